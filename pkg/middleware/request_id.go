// Package middleware contains any custom middleware used in the app
package middleware

import (
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewRequestIDMiddleware tags every request with a short random ID so
// log lines of one request can be found together
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gonanoid.New(10)
		if err != nil {
			id = "unknown"
		}

		c.Set("requestID", id)
		c.Next()
	}
}
