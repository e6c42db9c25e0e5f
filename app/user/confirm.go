package user

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserConfirmEmail handles the link from the confirmation mail.
// Confirming an already confirmed address is fine and says so.
func UserConfirmEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")

	msg, err := d.Auth.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		if err == service.ErrVerification {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Verification error",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Email confirmation failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
