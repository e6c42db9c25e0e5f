package user

import (
	"fmt"
	"net/http"
	"time"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateBody struct {
	Username string    `json:"username"`
	Roles    string    `json:"roles"`
	Created  time.Time `json:"created"`
	Verified bool      `json:"verified"`
}

func UserUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.Update(c.Request.Context(), userID, data.Username, data.Roles, data.Created, data.Verified)
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

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
