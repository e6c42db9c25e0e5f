package user

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestEmailBody struct {
	Email string `json:"email"`
}

// UserRequestEmail re-sends the confirmation mail. The response is the
// same whether or not the address is registered.
func UserRequestEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data requestEmailBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.GetByEmail(c.Request.Context(), data.Email)
	if err != nil && err != repository.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user != nil {
		if user.Verified {
			c.JSON(http.StatusOK, gin.H{
				"message": "Your email '" + user.Email + "' is already confirmed",
			})
			return
		}

		baseURL := baseURLOf(c)
		go func() {
			if err := d.Mail.SendConfirmation(user.Email, user.Username, baseURL); err != nil {
				zap.L().Error("Failed to re-send confirmation email", zap.Error(err), zap.String("email", user.Email))
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Check your email for confirmation."})
}
