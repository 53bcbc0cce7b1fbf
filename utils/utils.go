package utils

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs information about each request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Process request
		c.Next()

		latency := time.Since(startTime)

		log.Printf("%s %s -> %d (%s)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency,
		)
	}
}
