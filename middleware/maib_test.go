package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
)

func newWebhookRouter(client *maibControllers.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/payment", MAIBWebhookAuth(client), func(c *gin.Context) {
		payload := c.MustGet(maibControllers.WebhookPayloadKey).(map[string]interface{})
		c.JSON(http.StatusOK, gin.H{"orderId": payload["orderId"]})
	})
	return r
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-MAIB-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookAuthAcceptsValidSignature(t *testing.T) {
	client := maibControllers.NewClient(maibControllers.ModeLive, "https://gateway.test", "m", "secret", "", "", nil)
	r := newWebhookRouter(client)

	payload := map[string]interface{}{"orderId": "ord-1", "status": "approved"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := postWebhook(r, body, client.Sign(payload))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ord-1")
}

func TestWebhookAuthRejectsBadSignature(t *testing.T) {
	client := maibControllers.NewClient(maibControllers.ModeLive, "https://gateway.test", "m", "secret", "", "", nil)
	r := newWebhookRouter(client)

	body := []byte(`{"orderId":"ord-1","status":"approved"}`)
	w := postWebhook(r, body, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuthRejectsMissingSignature(t *testing.T) {
	client := maibControllers.NewClient(maibControllers.ModeLive, "https://gateway.test", "m", "secret", "", "", nil)
	r := newWebhookRouter(client)

	body := []byte(`{"orderId":"ord-1","status":"approved"}`)
	w := postWebhook(r, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuthRejectsSignatureForDifferentPayload(t *testing.T) {
	client := maibControllers.NewClient(maibControllers.ModeLive, "https://gateway.test", "m", "secret", "", "", nil)
	r := newWebhookRouter(client)

	signature := client.Sign(map[string]interface{}{"orderId": "ord-1", "status": "approved"})
	// Same signature, different body.
	w := postWebhook(r, []byte(`{"orderId":"ord-2","status":"approved"}`), signature)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookAuthRejectsMalformedJSON(t *testing.T) {
	client := maibControllers.NewClient(maibControllers.ModeLive, "https://gateway.test", "m", "secret", "", "", nil)
	r := newWebhookRouter(client)

	w := postWebhook(r, []byte("not json"), "whatever")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
