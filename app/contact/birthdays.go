package contact

import (
	"net/http"
	"strconv"

	"okravets/contacts-api/internal"
	"okravets/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactBirthdays lists owned contacts whose birthday comes up within
// the requested number of days, capped at a year
func ContactBirthdays(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Days must be a non-negative number",
			"requestID": requestID,
		})
		return
	}

	contacts, err := d.Contacts.UpcomingBirthdays(c.Request.Context(), user, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to collect upcoming birthdays", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
