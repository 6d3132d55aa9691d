package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "admin_claims"

// Authorizer accepts either the shared secret or a bearer token issued by
// POST /admin/login.
type Authorizer struct {
	Secrets SecretChecker
	Tokens  TokenService
}

// Authorize checks password first and falls back to the Authorization header.
// Without a configured secret every request is rejected, tokens included.
func (a Authorizer) Authorize(c *gin.Context, password string) error {
	if !a.Secrets.Configured() {
		return ErrUnauthorized
	}
	if password != "" {
		if err := a.Secrets.Check(password); err == nil {
			return nil
		}
	}
	raw, ok := bearerToken(c)
	if !ok {
		return ErrUnauthorized
	}
	claims, err := a.Tokens.Parse(raw)
	if err != nil {
		return ErrUnauthorized
	}
	c.Set(CtxClaimsKey, claims)
	return nil
}

// RequireToken guards routes that take no password field.
func (a Authorizer) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.Authorize(c, ""); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(h[len("Bearer "):])
	return raw, raw != ""
}
