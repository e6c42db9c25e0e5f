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

func ContactCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var fields validators.ContactFields
	if err := c.ShouldBind(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	contact, err := d.Contacts.Create(c.Request.Context(), user, &fields)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidFields) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, contact)
}
