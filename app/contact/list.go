// Package contact contains the contact CRUD, search and birthday
// endpoints. Every operation is scoped to the authenticated user.
package contact

import (
	"net/http"
	"strconv"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ContactList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Skip must be a non-negative number",
			"requestID": requestID,
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be greater than 0",
			"requestID": requestID,
		})
		return
	}

	contacts, err := d.Contacts.List(c.Request.Context(), user, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
