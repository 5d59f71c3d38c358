package orderControllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprint-wear/storefront-api/models"
)

func TestHubBroadcastsPaidOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/admin/orders/stream", hub.StreamOrders())
	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/admin/orders/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The handler registers the client just after the upgrade.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastPaidOrder(models.Order{ID: "ord-1", PaymentStatus: models.PaymentStatusPaid, TotalCents: 25800})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, json.Unmarshal(msg, &order))
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestBroadcastWithoutClientsIsANoOp(t *testing.T) {
	hub := NewHub()
	hub.BroadcastPaidOrder(models.Order{ID: "ord-1"})
}
