package contact

import (
	"net/http"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactSearch finds owned contacts by exact match on one of the four
// searchable fields. Unknown fields just produce an empty result.
func ContactSearch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	field := c.Query("field")
	if field == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No search field provided",
			"requestID": requestID,
		})
		return
	}

	value := c.Query("value")
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No search value provided",
			"requestID": requestID,
		})
		return
	}

	contacts, err := d.Contacts.SearchBy(c.Request.Context(), user, field, value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to search contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
