package maibControllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(mode Mode, gatewayURL string) *Client {
	return NewClient(mode, gatewayURL, "merchant-1", "super-secret", "https://shop.test/return", "https://shop.test/callback", nil)
}

func TestSignVerifyRoundtrip(t *testing.T) {
	client := newTestClient(ModeLive, "https://gateway.test")

	payload := map[string]interface{}{
		"orderId": "ord-123",
		"status":  "approved",
	}

	signature := client.Sign(payload)
	require.NotEmpty(t, signature)
	assert.True(t, client.VerifySignature(payload, signature))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	client := newTestClient(ModeLive, "https://gateway.test")

	payload := map[string]interface{}{"orderId": "ord-123", "status": "approved"}
	signature := client.Sign(payload)

	// Flip a single byte.
	tampered := []byte(signature)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, client.VerifySignature(payload, string(tampered)))
}

func TestVerifyRejectsAbsentOrShortSignature(t *testing.T) {
	client := newTestClient(ModeLive, "https://gateway.test")
	payload := map[string]interface{}{"orderId": "ord-123", "status": "approved"}

	assert.False(t, client.VerifySignature(payload, ""))
	assert.False(t, client.VerifySignature(payload, "deadbeef"))
}

func TestVerifyIgnoresSignatureField(t *testing.T) {
	client := newTestClient(ModeLive, "https://gateway.test")

	payload := map[string]interface{}{"orderId": "ord-123", "status": "approved"}
	signature := client.Sign(payload)

	// The receiver sees the signature inside the payload it parsed.
	payload["signature"] = signature
	assert.True(t, client.VerifySignature(payload, signature))
}

func TestSignIsTypeAgnosticForNumbers(t *testing.T) {
	client := newTestClient(ModeLive, "https://gateway.test")

	// The sender signs an int64 amount; the receiver re-signs the JSON-decoded
	// payload where the amount became a float64. Both must match.
	sent := map[string]interface{}{"orderId": "ord-123", "amount": int64(25800)}
	received := map[string]interface{}{"orderId": "ord-123", "amount": float64(25800)}

	assert.Equal(t, client.Sign(sent), client.Sign(received))
}

func TestCreatePaymentMockMode(t *testing.T) {
	client := newTestClient(ModeMock, "")

	paymentID, redirectURL, err := client.CreatePayment(context.Background(), "ord-42", 25800, "MDL", "Order #42")
	require.NoError(t, err)
	assert.Equal(t, "mock-ord-42", paymentID)
	assert.Equal(t, "https://shop.test/return", redirectURL)
}

func TestCreatePaymentLive(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paymentId":"pay-1","redirectUrl":"https://gateway.test/pay/pay-1"}`))
	}))
	defer server.Close()

	client := newTestClient(ModeLive, server.URL)

	paymentID, redirectURL, err := client.CreatePayment(context.Background(), "ord-42", 25800, "MDL", "Order #42")
	require.NoError(t, err)
	assert.Equal(t, "pay-1", paymentID)
	assert.Equal(t, "https://gateway.test/pay/pay-1", redirectURL)

	// The request is signed over its own fields.
	signature, ok := received["signature"].(string)
	require.True(t, ok)
	assert.True(t, client.VerifySignature(received, signature))
	assert.Equal(t, "merchant-1", received["merchantId"])
	assert.Equal(t, float64(25800), received["amount"])
}

func TestCreatePaymentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(ModeLive, server.URL)

	_, _, err := client.CreatePayment(context.Background(), "ord-42", 25800, "MDL", "Order #42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIB create payment failed")
}

func TestCreatePaymentEmptyRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paymentId":"pay-1","redirectUrl":""}`))
	}))
	defer server.Close()

	client := newTestClient(ModeLive, server.URL)

	_, _, err := client.CreatePayment(context.Background(), "ord-42", 25800, "MDL", "Order #42")
	require.Error(t, err)
}
