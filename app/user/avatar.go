package user

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserPatchAvatar replaces the user's avatar with an uploaded image.
// The object key is stable per user so the old image gets overwritten.
func UserPatchAvatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	if d.Avatars == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Avatar storage is not configured",
			"requestID": requestID,
		})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No avatar file provided",
			"requestID": requestID,
		})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	url, err := d.Avatars.Upload(c.Request.Context(), user.ID, header.Header.Get("Content-Type"), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to store avatar",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	updated, err := d.Users.SetAvatar(c.Request.Context(), user, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to persist avatar URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, updated)
}
