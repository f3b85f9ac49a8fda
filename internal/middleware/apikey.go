package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Development keys, replaced in production via the API_KEYS env var
// (comma-separated).
var defaultAPIKeys = []string{
	"abc123-def456-ghi789",
	"xyz987-wvu654-tsr321",
}

// APIKeys returns the configured allow-list.
func APIKeys() []string {
	if raw := os.Getenv("API_KEYS"); raw != "" {
		var keys []string
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		return keys
	}
	return defaultAPIKeys
}

// APIKeyAuth gates the JSON API. The key comes from the x-api-key
// header or the api_key query parameter: missing -> 401, unknown -> 403.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(validKeys))
	for _, k := range validKeys {
		allowed[k] = true
	}

	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "API key required",
				"message": "Please provide an API key in x-api-key header",
			})
			return
		}
		if !allowed[apiKey] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			return
		}
		c.Next()
	}
}
