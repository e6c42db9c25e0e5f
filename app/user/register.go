// Package user contains the account and authentication endpoints
package user

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.Create(c.Request.Context(), data.Email, hash, data.Username)
	if err != nil {
		if err == repository.ErrDuplicateEmail {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This email is already registered. Please login or use a different email",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Mail delivery never blocks or fails the signup
	baseURL := baseURLOf(c)
	go func() {
		if err := d.Mail.SendConfirmation(user.Email, user.Username, baseURL); err != nil {
			zap.L().Error("Failed to send confirmation email", zap.Error(err), zap.String("email", user.Email))
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"detail": "User successfully created. Check your email for confirmation.",
	})
}

func baseURLOf(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + c.Request.Host
}
