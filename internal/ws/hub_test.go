package ws

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
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(zap.NewNop())
	go hub.Run()

	router := gin.New()
	router.GET("/ws", ServeWS(hub, zap.NewNop()))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	return server, wsURL
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readAck(t *testing.T, conn *websocket.Conn) ConnectionAck {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ack ConnectionAck
	require.NoError(t, json.Unmarshal(raw, &ack))
	return ack
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestConnectionAckCarriesClientID(t *testing.T) {
	_, wsURL := newTestServer(t)
	conn := dial(t, wsURL)

	ack := readAck(t, conn)
	assert.Equal(t, EventConnection, ack.Type)
	assert.Equal(t, "connected", ack.Status)
	assert.NotEmpty(t, ack.ClientID)
}

func TestBroadcastExcludesSender(t *testing.T) {
	_, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	receiverA := dial(t, wsURL)
	receiverB := dial(t, wsURL)
	readAck(t, sender)
	readAck(t, receiverA)
	readAck(t, receiverB)

	msg := `{"type":"workout_update","data":{"username":"wolf","type":"Running","duration":40,"calories":300}}`
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(msg)))

	for _, receiver := range []*websocket.Conn{receiverA, receiverB} {
		envelope := readEnvelope(t, receiver)
		assert.Equal(t, EventWorkoutUpdate, envelope.Type)

		var payload WorkoutUpdate
		require.NoError(t, json.Unmarshal(envelope.Data, &payload))
		assert.Equal(t, "wolf", payload.Username)
		assert.Equal(t, 40, payload.Duration)
	}

	// The sender must not receive its own event.
	sender.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := sender.ReadMessage()
	assert.Error(t, err)
}

func TestUnknownMessageTypeDropped(t *testing.T) {
	_, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	receiver := dial(t, wsURL)
	readAck(t, sender)
	readAck(t, receiver)

	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(`{"type":"bogus","data":{}}`)))

	// The connection survives; a later valid message still flows.
	valid := `{"type":"achievement_notification","data":{"username":"wolf","achievementName":"Power Surge"}}`
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(valid)))

	envelope := readEnvelope(t, receiver)
	assert.Equal(t, EventAchievementNotification, envelope.Type)

	var payload AchievementNotification
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, "Power Surge", payload.AchievementName)
}

func TestConnectionAckPrecedesBroadcasts(t *testing.T) {
	_, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	readAck(t, sender)

	// Keep broadcasts in flight while new clients join.
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := []byte(`{"type":"workout_update","data":{"username":"wolf"}}`)
		for {
			select {
			case <-stop:
				return
			default:
				if err := sender.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}
	}()

	// A client joining mid-stream still sees the ack as its first frame.
	for i := 0; i < 5; i++ {
		conn := dial(t, wsURL)
		envelope := readEnvelope(t, conn)
		assert.Equal(t, EventConnection, envelope.Type, "first frame must be the connection ack")
		conn.Close()
	}

	close(stop)
	<-done
}

func TestMalformedFrameDropped(t *testing.T) {
	_, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	receiver := dial(t, wsURL)
	readAck(t, sender)
	readAck(t, receiver)

	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte("not json")))

	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(`{"type":"workout_update","data":{"username":"ok"}}`)))
	envelope := readEnvelope(t, receiver)
	assert.Equal(t, EventWorkoutUpdate, envelope.Type)
}
