package contact

import (
	"errors"
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/internal/repository"
	"okravets/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactUpdate replaces all mutable fields of an owned contact
func ContactUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	id, ok := contactIDParam(c, requestID)
	if !ok {
		return
	}

	var fields validators.ContactFields
	if err := c.ShouldBind(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	contact, err := d.Contacts.Update(c.Request.Context(), user, id, &fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidFields):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case err == repository.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"error":     notFoundMsg(id, user),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update contact", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, contact)
}
