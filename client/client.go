// Package client is the single choke point for all calls to the portfolio
// backend. It tracks backend availability from a health probe, fails writes
// fast while the backend is down, and substitutes the static fallback
// dataset on read paths.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/muneeb-arif/my-portfolio-sub000/cache"
	"github.com/muneeb-arif/my-portfolio-sub000/config"
	"github.com/muneeb-arif/my-portfolio-sub000/errs"
	"github.com/muneeb-arif/my-portfolio-sub000/fallback"
)

// Response is the envelope every backend endpoint returns
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DecodeData unmarshals the envelope payload into out
func (r *Response) DecodeData(out any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}

// Client wraps all network calls against the backend API. The availability
// flag and the degraded-notice flag are shared mutable state with the
// lifecycle "set on first failure, cleared only by ResetAvailability", so
// every access goes through the mutex.
type Client struct {
	baseURL       string
	useAPI        bool
	httpClient    *http.Client
	logger        zerolog.Logger
	lookups       *cache.Cache
	seed          fallback.Dataset
	probeInterval time.Duration

	mu             sync.Mutex
	token          string
	tokenClaims    *TokenClaims
	configTenantID string
	available      bool
	lastProbe      time.Time
	noticeShown    bool
	noticeFn       func(message string)
}

// New builds a client from the environment config map.
// Recognized keys:
//   - API_BASE_URL: backend base URL (default http://localhost:8080)
//   - USE_API: when false the client never touches the network and every
//     read is served from the fallback dataset
//   - OWNER_TENANT_ID: tenant identity used when the token carries none
//   - API_ACCESS_TOKEN: initial bearer token, optional
//   - HTTP_TIMEOUT_SECONDS, HEALTH_PROBE_INTERVAL_SECONDS
func New(cfg map[string]string) *Client {
	logger := log.With().Str("component", "client").Logger()

	timeout := time.Duration(config.GetInt(cfg, "HTTP_TIMEOUT_SECONDS", 30)) * time.Second
	probeInterval := time.Duration(config.GetInt(cfg, "HEALTH_PROBE_INTERVAL_SECONDS", 30)) * time.Second

	c := &Client{
		baseURL:        strings.TrimSuffix(config.GetString(cfg, "API_BASE_URL", "http://localhost:8080"), "/"),
		useAPI:         config.GetBool(cfg, "USE_API", true),
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
		lookups:        cache.New(),
		seed:           fallback.NewDataset(),
		probeInterval:  probeInterval,
		configTenantID: config.GetString(cfg, "OWNER_TENANT_ID", ""),
	}
	c.noticeFn = func(message string) {
		logger.Warn().Msg(message)
	}

	if token := config.GetString(cfg, "API_ACCESS_TOKEN", ""); token != "" {
		c.SetToken(token)
	}
	return c
}

// SetDegradedNoticeFunc replaces the sink for the one-time degraded-mode
// notice. The engine points this at its progress reporter.
func (c *Client) SetDegradedNoticeFunc(fn func(message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noticeFn = fn
}

// CheckHealth probes GET /health and records the result in the availability
// flag. Network errors are swallowed into available=false, never returned.
func (c *Client) CheckHealth(ctx context.Context) bool {
	if !c.useAPI {
		c.markUnavailable()
		return false
	}

	healthy := c.probe(ctx)

	c.mu.Lock()
	c.available = healthy
	c.lastProbe = time.Now()
	c.mu.Unlock()

	if !healthy {
		c.logger.Warn().Msg("Health probe failed, marking backend unavailable")
	}
	return healthy
}

func (c *Client) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

// Available reports the current availability flag without probing
func (c *Client) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

// ResetAvailability clears the availability and notice flags and forces the
// next call to re-probe. Intended for tests and manual retry.
func (c *Client) ResetAvailability() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = true
	c.noticeShown = false
	c.lastProbe = time.Time{}
}

// ensureProbed re-runs the health probe when the last one is older than the
// probe interval. This bounds probe overhead to once per batch rather than
// once per call, and lets a transiently failed backend come back without an
// explicit reset.
func (c *Client) ensureProbed(ctx context.Context) {
	c.mu.Lock()
	stale := time.Since(c.lastProbe) >= c.probeInterval
	c.mu.Unlock()

	if stale {
		c.CheckHealth(ctx)
	}
}

// Request performs an authenticated call against the backend. When the
// client already knows the backend is down it fails fast with a
// backend-unavailable error instead of attempting the network call. Any
// transport failure or non-2xx status flips the availability flag for
// subsequent calls and is returned to the caller. Write paths use this
// directly: a fallback write has no meaningful backing store.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	if !c.useAPI {
		return nil, errs.NewBackendUnavailableError(path)
	}

	c.ensureProbed(ctx)

	if !c.Available() {
		return nil, errs.NewBackendUnavailableError(path)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.markUnavailable()
		c.logger.Error().Err(err).Str("path", path).Msg("Transport failure, marking backend unavailable")
		return nil, errs.NewTransportError(path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.markUnavailable()
		return nil, errs.NewTransportError(path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.markUnavailable()
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Msg("Backend returned error status")
		return nil, errs.NewStatusCodeError(path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var envelope Response
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	// A well-formed 2xx envelope with success=false is an application-level
	// rejection, not an availability problem: the flag stays up.
	if !envelope.Success {
		return &envelope, errs.NewBackendRejectionError(path, envelope.Error)
	}

	return &envelope, nil
}

// RequestWithFallback calls Request and, on any failure, substitutes the
// supplied fallback value as a successful response. The degraded-mode
// notice is emitted exactly once no matter how many calls fail. All entity
// read paths go through here.
func (c *Client) RequestWithFallback(ctx context.Context, method, path string, body, fallbackValue any) (*Response, error) {
	resp, err := c.Request(ctx, method, path, body)
	if err == nil {
		return resp, nil
	}

	c.emitDegradedNotice()
	c.logger.Debug().Err(err).Str("path", path).Msg("Serving fallback data")

	data, marshalErr := json.Marshal(fallbackValue)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal fallback value for %s: %w", path, marshalErr)
	}
	return &Response{Success: true, Data: data}, nil
}

func (c *Client) markUnavailable() {
	c.mu.Lock()
	c.available = false
	c.mu.Unlock()
}

func (c *Client) emitDegradedNotice() {
	c.mu.Lock()
	if c.noticeShown {
		c.mu.Unlock()
		return
	}
	c.noticeShown = true
	notice := c.noticeFn
	c.mu.Unlock()

	if notice != nil {
		notice("Backend unreachable: serving cached portfolio data. Recent changes may not be visible.")
	}
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
