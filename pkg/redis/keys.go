package redis

import "strings"

// Every key lives under the bookstore namespace:
//
//	bookstore:session:access:<access_id>
//	bookstore:grid:<access_id>:viewport|selection
//	bookstore:cache:<parts...>
//	bookstore:rate_limit:<scope>
//	bookstore:idempotency:<scope>:<key>
const (
	keyNamespace      = "bookstore"
	idempotencyPrefix = "idempotency"
	rateLimitPrefix   = "rate_limit"
	sessionPrefix     = "session"
	gridPrefix        = "grid"
	cachePrefix       = "cache"
)

func (c *Client) IdempotencyKey(scope, id string) string {
	return buildKey(idempotencyPrefix, scope, id)
}

func (c *Client) RateLimitKey(scope string) string {
	return buildKey(rateLimitPrefix, scope)
}

// AccessSessionKey holds the refresh token digest for one access ID.
func (c *Client) AccessSessionKey(accessID string) string {
	return buildKey(sessionPrefix, "access", accessID)
}

// GridViewportKey holds the last viewport width reported by a session.
func (c *Client) GridViewportKey(accessID string) string {
	return buildKey(gridPrefix, accessID, "viewport")
}

// GridSelectionKey holds the product currently selected in a session's grid.
func (c *Client) GridSelectionKey(accessID string) string {
	return buildKey(gridPrefix, accessID, "selection")
}

// GridStateKeys lists every grid key owned by a session, so logout and
// rotation can drop them with the session itself.
func (c *Client) GridStateKeys(accessID string) []string {
	return []string{c.GridViewportKey(accessID), c.GridSelectionKey(accessID)}
}

func (c *Client) CacheKey(parts ...string) string {
	return buildKey(append([]string{cachePrefix}, parts...)...)
}

// buildKey joins the non-blank parts under the namespace.
func buildKey(parts ...string) string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}
