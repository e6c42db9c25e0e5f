package middleware

import (
	"net/http"
	"strings"

	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewJWTMiddleware authenticates requests with a bearer access token.
// The token subject must resolve to an existing, verified user; the
// resolved user is stored in the context for the handlers.
func NewJWTMiddleware(tokens *security.TokenMaker, users *repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No authorization header",
				"requestID": requestID,
			})
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization header must be 'Bearer <token>'",
				"requestID": requestID,
			})
			return
		}

		email, err := tokens.EmailFromToken(tokenStr, security.ScopeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse access token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if err == repository.ErrNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "token_invalid",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve token subject", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.Verified {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "account_not_verified",
				"requestID": requestID,
			})
			return
		}

		c.Set("user", user)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}
