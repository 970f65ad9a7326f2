package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

const allowedMethods = "GET, POST, PUT, DELETE"

// Cors allows cross-origin requests from origins. "*" allows any origin.
func Cors(origins []string) gin.HandlerFunc {
	anyOrigin := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !(anyOrigin || slices.Contains(origins, origin)) {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
