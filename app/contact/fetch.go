package contact

import (
	"fmt"
	"net/http"
	"strconv"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ContactFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	id, ok := contactIDParam(c, requestID)
	if !ok {
		return
	}

	contact, err := d.Contacts.Get(c.Request.Context(), user, id)
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

		zap.L().Error("Failed to fetch contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contact)
}

func contactIDParam(c *gin.Context, requestID string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Contact ID must be a number",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}

// A contact owned by somebody else reports the same way as a missing
// one, so the response can't be used to probe for existence
func notFoundMsg(id uint, user *model.User) string {
	return fmt.Sprintf("Contact id = %d (user: '%s') not found", id, user.Email)
}
