package contact

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactDelete hard-deletes an owned contact and returns the removed row
func ContactDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	id, ok := contactIDParam(c, requestID)
	if !ok {
		return
	}

	contact, err := d.Contacts.Remove(c.Request.Context(), user, id)
	if err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     notFoundMsg(id, user),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contact)
}
