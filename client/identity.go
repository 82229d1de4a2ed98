package client

import (
	"context"
	"time"

	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Lookup cache keys and TTLs. Burst initialization fires both lookups from
// several places at once; the single-flight cache collapses them into one
// network call each.
const (
	identityCacheKey = "auth:identity"
	settingsCacheKey = "tenant:settings"

	identityTTL = 30 * time.Second
	settingsTTL = 60 * time.Second
)

// Identity is the authenticated account the backend resolves for the
// current bearer token.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
}

// Identity resolves the current account via GET /auth/me, memoized for a
// short TTL. A failed lookup is negative-cached for the same window, so a
// broken auth endpoint is not hammered; callers receive nil in that case.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	value, err := c.lookups.Get(identityCacheKey, identityTTL, func() (any, error) {
		resp, err := c.Request(ctx, "GET", "/auth/me", nil)
		if err != nil {
			return nil, err
		}
		var identity Identity
		if err := resp.DecodeData(&identity); err != nil {
			return nil, err
		}
		return &identity, nil
	})
	if err != nil {
		return nil, err
	}
	identity, _ := value.(*Identity)
	return identity, nil
}

// TenantSettings fetches the full settings map for the current tenant,
// memoized and deduplicated like Identity. Reads fall back to the seed
// settings when the backend is down.
func (c *Client) TenantSettings(ctx context.Context) (map[string]models.Setting, error) {
	value, err := c.lookups.Get(settingsCacheKey, settingsTTL, func() (any, error) {
		settings, err := c.ListSettings(ctx)
		if err != nil {
			return nil, err
		}
		byKey := make(map[string]models.Setting, len(settings))
		for _, s := range settings {
			byKey[s.Key] = s
		}
		return byKey, nil
	})
	if err != nil {
		return nil, err
	}
	settings, _ := value.(map[string]models.Setting)
	return settings, nil
}

// InvalidateLookups clears the memoized identity/config lookups. SetToken
// and ClearToken call this implicitly.
func (c *Client) InvalidateLookups() {
	c.lookups.Invalidate()
}
