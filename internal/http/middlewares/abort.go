package middlewares

import "github.com/gin-gonic/gin"

// abortError stops the chain with the API error envelope.
func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":      code,
			"message":   message,
			"requestId": RequestIDFromContext(c),
		},
	})
}
