package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
	pkgerrors "github.com/palhamel/mongo-auth-code/pkg/errors"
)

// UserContextKey is the gin context key under which the authenticated
// user is stored for downstream handlers.
const UserContextKey = "authenticated_user"

// AuthenticateUser returns a guard middleware for protected routes. The
// Authorization header carries the raw access token; if the store knows
// it, the user is attached to the context and the chain continues,
// otherwise the request is rejected with 401 and the handler never runs.
func AuthenticateUser(uc auth.Usecase, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")

		u, err := uc.Authenticate(c.Request.Context(), token)
		if err != nil {
			var unauth *pkgerrors.UnauthenticatedError
			if errors.As(err, &unauth) {
				log.Debug("rejected unauthenticated request", zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"loggedOut": true})
				return
			}
			log.Error("failed to authenticate request", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.Set(UserContextKey, u)
		c.Next()
	}
}

// UserFromContext returns the authenticated user placed by
// AuthenticateUser, or nil when the route is not guarded.
func UserFromContext(c *gin.Context) *domain.User {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
