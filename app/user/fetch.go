package user

import (
	"net/http"
	"strconv"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the authenticated user's own record
func UserFetch(c *gin.Context, d *internal.Deps) {
	user := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, user)
}

func UserList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Skip must be a non-negative number",
			"requestID": requestID,
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be greater than 0",
			"requestID": requestID,
		})
		return
	}

	users, err := d.Users.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, users)
}
