package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
)

// MAIBWebhookAuth verifies the X-MAIB-Signature header against the JSON body
// before the webhook handler reads or mutates anything. The verified payload
// is stashed on the context so the handler does not parse the body twice.
func MAIBWebhookAuth(client *maibControllers.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
			return
		}

		signature := c.GetHeader("X-MAIB-Signature")
		if !client.VerifySignature(payload, signature) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		c.Set(maibControllers.WebhookPayloadKey, payload)
		c.Next()
	}
}
