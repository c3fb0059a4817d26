package v1

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

func dialFloor(t *testing.T, h *FloorHandler) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/floor/ws", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/floor/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestFloorHandler_BroadcastsEvents(t *testing.T) {
	h := NewFloorHandler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	first := dialFloor(t, h)
	second := dialFloor(t, h)
	require.Eventually(t, func() bool { return h.Connected() == 2 }, time.Second, 10*time.Millisecond)

	event := domain.NewEvent(domain.EventTableMoved)
	event.TableID = 7
	require.NoError(t, h.Publish(ctx, event))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)

		var got domain.Event
		require.NoError(t, json.Unmarshal(message, &got))
		assert.Equal(t, domain.EventTableMoved, got.Type)
		assert.Equal(t, uint(7), got.TableID)
	}
}

func TestFloorHandler_UnregistersClosedClients(t *testing.T) {
	h := NewFloorHandler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	conn := dialFloor(t, h)
	require.Eventually(t, func() bool { return h.Connected() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFloorHandler_PublishWithoutRunner(t *testing.T) {
	h := NewFloorHandler()
	event := domain.NewEvent(domain.EventSessionOpened)

	for i := 0; i < broadcastSize; i++ {
		require.NoError(t, h.Publish(context.Background(), event))
	}
	assert.ErrorIs(t, h.Publish(context.Background(), event), errFeedSaturated)
}

func TestFloorHandler_StopClosesClients(t *testing.T) {
	h := NewFloorHandler()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	conn := dialFloor(t, h)
	require.Eventually(t, func() bool { return h.Connected() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
