package middleware

import (
	"net/http"
	"strings"

	"lesson-planner/internal/config"
	"lesson-planner/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	IdentityKey = "identity"

	AuthMethodSession = "session"
	AuthMethodBearer  = "bearer"
)

// Identity is the authenticated user of the current request.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Method   string
}

// AuthMiddleware resolves the request identity from a bearer token or, when
// no Authorization header is sent, from the session cookie.
func AuthMiddleware(cfg *config.Config, store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
				c.Abort()
				return
			}

			claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
			if err != nil {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
				c.Abort()
				return
			}

			c.Set(IdentityKey, &Identity{UserID: claims.UserID, Username: claims.Username, Method: AuthMethodBearer})
			c.Next()
			return
		}

		identity, ok := store.identity(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok && identity != nil
}
