package auth

import (
	"net/http"
	"strings"

	"github.com/bdfdm25/task-manager/internal/domain"
	"github.com/bdfdm25/task-manager/internal/repo"

	"github.com/gin-gonic/gin"
)

const contextKeyUser = "current_user"

// UserFromContext returns the user resolved by RequireUser.
func UserFromContext(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}

// RequireUser returns a middleware that verifies the bearer token and
// re-resolves the embedded email against the user store, so a token for an
// account deleted after issuance is rejected before its expiry. On any
// failure the request is aborted with 401.
func RequireUser(tokens *TokenManager, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		user, err := users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}
