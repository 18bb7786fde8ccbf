package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/customeros/ingestgen/api/errors"
)

// APIKeyConfig holds the configuration for API key authentication
type APIKeyConfig struct {
	HeaderName  string
	ValidAPIKey string
}

// APIKeyMiddleware rejects requests whose key header does not match. An empty ValidAPIKey
// accepts any non-empty key.
func APIKeyMiddleware(config APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(config.HeaderName))

		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewErrorResponse("Unauthorized.", "Missing API key"))
			return
		}

		if config.ValidAPIKey != "" && apiKey != config.ValidAPIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewErrorResponse("Unauthorized.", "Invalid API key"))
			return
		}

		c.Next()
	}
}
