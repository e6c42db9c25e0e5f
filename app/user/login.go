package user

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	pair, err := d.Auth.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidEmail:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid email",
				"requestID": requestID,
			})
		case service.ErrEmailNotConfirmed:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Email not confirmed",
				"requestID": requestID,
			})
		case service.ErrInvalidPassword:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid password",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Login failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, pair)
}
