package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muneeb-arif/my-portfolio-sub000/errs"
)

// TokenClaims is the subset of bearer-token claims this layer consumes.
// Token issuance and signature verification belong to the auth provider;
// the claims are only read to scope settings and sync to the right tenant.
type TokenClaims struct {
	Subject   string
	TenantID  string
	ExpiresAt time.Time
}

// SetToken stores the bearer token attached to every authenticated request
// and invalidates the identity/config lookup cache, since cached lookups
// belong to the previous identity.
func (c *Client) SetToken(token string) {
	claims, err := parseTokenClaims(token)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Token is not a parseable JWT, using it opaquely")
	}

	c.mu.Lock()
	c.token = token
	c.tokenClaims = claims
	c.mu.Unlock()

	c.lookups.Invalidate()
}

// ClearToken drops the bearer token on logout. It performs no network call.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenClaims = nil
	c.mu.Unlock()

	c.lookups.Invalidate()
}

// TenantID resolves the tenant identity used to scope settings and sync:
// the token's tenant claim when present, otherwise the configured owner id.
func (c *Client) TenantID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokenClaims != nil && c.tokenClaims.TenantID != "" {
		return c.tokenClaims.TenantID
	}
	return c.configTenantID
}

// TokenExpired reports whether the stored token carries an exp claim in the
// past. A missing token is reported via errs.ErrMissingToken.
func (c *Client) TokenExpired() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return false, errs.NewMissingTokenError()
	}
	if c.tokenClaims == nil || c.tokenClaims.ExpiresAt.IsZero() {
		return false, nil
	}
	return time.Now().After(c.tokenClaims.ExpiresAt), nil
}

// parseTokenClaims decodes the JWT payload without verifying the signature.
// Verification happens server-side; this layer only needs the claims.
func parseTokenClaims(raw string) (*TokenClaims, error) {
	parser := jwt.NewParser()

	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.NewBadRequestError("unexpected JWT claims type")
	}

	claims := &TokenClaims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if tenant, ok := mapClaims["tenant_id"].(string); ok {
		claims.TenantID = tenant
	}

	return claims, nil
}
