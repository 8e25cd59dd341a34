package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "grapevine/auth/identity"

// Identity is the authenticated caller bound to a request context.
type Identity struct {
	ID    string
	Name  string
	Email string
	Slug  string
	Role  string
}

// Middleware parses an optional Authorization bearer token and, when it
// verifies, attaches the caller's identity to the request context. Requests
// without a valid token pass through with no identity attached; gating is
// left to the handlers.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, Identity{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Slug:  claims.Slug,
			Role:  claims.Role,
		})
		c.Next()
	}
}

// CurrentIdentity returns the identity attached to the request, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

// IsLoggedIn reports whether an authenticated identity with a non-empty ID
// is bound to the request. Pure predicate, no I/O.
func IsLoggedIn(c *gin.Context) bool {
	identity, ok := CurrentIdentity(c)
	return ok && identity.ID != ""
}
