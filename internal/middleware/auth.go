package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pcbuild/internal/auth"
)

const (
	subjectKey = "subject"
	scopesKey  = "scopes"
)

// AuthMiddleware requires a valid bearer token. With an empty secret the
// gate is disabled and every request passes.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		claims, err := auth.ValidateToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Set(scopesKey, claims.Scopes)
		c.Next()
	}
}

// RequireScope rejects authenticated callers that lack scope. It lets the
// request through when no AuthMiddleware ran before it with a secret.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, authenticated := c.Get(subjectKey); !authenticated {
			c.Next()
			return
		}

		scopes := c.GetStringSlice(scopesKey)
		for _, s := range scopes {
			if s == scope {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// Subject returns the authenticated caller, or "" when the gate is off.
func Subject(c *gin.Context) string {
	return c.GetString(subjectKey)
}
