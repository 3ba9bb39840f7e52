package middleware

import "github.com/gin-gonic/gin"

// NoCache disables client and proxy caching of API responses.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Writer.Header().Set("Surrogate-Control", "no-store")
		c.Next()
	}
}
