package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth.principal"

// RequireAuth authenticates the Bearer token and stores the principal in the
// request context. Requests without a valid token get 401.
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// SetPrincipal stores the principal on the request context.
func SetPrincipal(c *gin.Context, principal *Principal) {
	c.Set(principalKey, principal)
}

// CurrentPrincipal returns the authenticated principal, nil on public routes.
func CurrentPrincipal(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := v.(*Principal)
	return principal
}
