package user

import (
	"fmt"
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserDelete removes an account. Contacts owned by the account go with
// it, there's nothing meaningful to keep them around for.
func UserDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	user, err := d.Users.Remove(c.Request.Context(), userID)
	if err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     fmt.Sprintf("User id = %s not found", userID),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
