package user

import (
	"net/http"
	"strings"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserRefresh exchanges a bearer-presented refresh token for a fresh
// access+refresh pair
func UserRefresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "No refresh token provided",
			"requestID": requestID,
		})
		return
	}

	pair, err := d.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid refresh token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Token refresh failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, pair)
}
