package maibControllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"
)

// Mode selects the gateway behaviour at startup. Mock exists for environments
// without live MAIB credentials and is logged loudly so it can never be
// mistaken for production.
type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// Client talks to the MAIB eComm gateway: it creates remote payment sessions
// and verifies inbound webhook signatures.
type Client struct {
	mode        Mode
	gatewayURL  string
	merchantID  string
	secret      string
	returnURL   string
	callbackURL string
	httpClient  *http.Client
}

// NewClientFromEnv reads MAIB_* settings and picks the mode once, so tests
// and operators can tell exactly which variant is running.
func NewClientFromEnv() *Client {
	c := &Client{
		gatewayURL:  os.Getenv("MAIB_GATEWAY_URL"),
		merchantID:  os.Getenv("MAIB_MERCHANT_ID"),
		secret:      os.Getenv("MAIB_SECRET"),
		returnURL:   os.Getenv("MAIB_RETURN_URL"),
		callbackURL: os.Getenv("MAIB_CALLBACK_URL"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		mode:        ModeLive,
	}
	if c.gatewayURL == "" {
		c.mode = ModeMock
		log.Println("⚠️ MAIB_GATEWAY_URL is not configured, payment gateway running in MOCK mode")
	}
	return c
}

// NewClient wires an explicit configuration, used by tests.
func NewClient(mode Mode, gatewayURL, merchantID, secret, returnURL, callbackURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		mode:        mode,
		gatewayURL:  gatewayURL,
		merchantID:  merchantID,
		secret:      secret,
		returnURL:   returnURL,
		callbackURL: callbackURL,
		httpClient:  httpClient,
	}
}

func (c *Client) Mode() Mode { return c.mode }

// formatValue renders payload values the way both sides of the integration
// serialize them, so signatures match regardless of the decoding types.
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Sign computes the MAC over the key-sorted k=v&… concatenation of the
// payload. Sorting keeps the serialization deterministic regardless of field
// insertion order, so sender and receiver always agree.
func (c *Client) Sign(payload map[string]interface{}) string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		if key == "signature" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var data bytes.Buffer
	for i, key := range keys {
		if i > 0 {
			data.WriteByte('&')
		}
		data.WriteString(key)
		data.WriteByte('=')
		data.WriteString(formatValue(payload[key]))
	}

	if c.secret == "" {
		// Mock signature; only reachable without live credentials.
		sum := sha256.Sum256(data.Bytes())
		return hex.EncodeToString(sum[:])
	}

	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write(data.Bytes())
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected MAC and compares it in constant
// time. A missing signature or a length mismatch is always a rejection.
func (c *Client) VerifySignature(payload map[string]interface{}, signature string) bool {
	if signature == "" {
		return false
	}
	expected := c.Sign(payload)
	if len(signature) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

type createPaymentResponse struct {
	PaymentID   string `json:"paymentId"`
	RedirectURL string `json:"redirectUrl"`
}

// CreatePayment opens a remote payment session for the order total and
// returns the gateway id plus the hosted-page redirect. In mock mode it
// returns a synthetic id and a local redirect instead of calling out.
func (c *Client) CreatePayment(ctx context.Context, orderID string, amountCents int64, currency, description string) (string, string, error) {
	payload := map[string]interface{}{
		"merchantId":  c.merchantID,
		"amount":      amountCents,
		"currency":    currency,
		"orderId":     orderID,
		"description": description,
		"returnUrl":   c.returnURL,
		"callbackUrl": c.callbackURL,
	}
	payload["signature"] = c.Sign(payload)

	if c.mode == ModeMock {
		redirectURL := c.returnURL
		if redirectURL == "" {
			redirectURL = "http://localhost:3000/checkout?status=mock"
		}
		log.Printf("⚠️ MAIB mock payment for order %s (%d %s)", orderID, amountCents, currency)
		return "mock-" + orderID, redirectURL, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("marshal MAIB payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("build MAIB request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach MAIB: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("MAIB create payment failed (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed createPaymentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", "", fmt.Errorf("parse MAIB response: %w", err)
	}
	if parsed.RedirectURL == "" {
		return "", "", fmt.Errorf("MAIB returned empty redirect URL")
	}

	return parsed.PaymentID, parsed.RedirectURL, nil
}
