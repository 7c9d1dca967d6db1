package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/testgen/internal/events"
	"github.com/kode4food/testgen/internal/session"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

// Client represents a WebSocket client streaming the changes of one session
type Client struct {
	session    *session.Session
	conn       *websocket.Conn
	consumer   topic.Consumer[*api.ChangeEvent]
	filter     events.EventFilter
	minVersion int64
	closeOnce  sync.Once
}

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 512
	wsBufferSize       = 1024
	incomingBufferSize = 16

	subscribeType  = "subscribe"
	subscribedType = "subscribed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an HTTP connection to WebSocket, sends the
// session's current state, and then streams its change events. It returns
// nil if the upgrade failed
func HandleWebSocket(
	hub *events.Hub, sess *session.Session, w http.ResponseWriter,
	r *http.Request,
) *Client {
	// subscribe before taking the snapshot so no change is missed
	consumer := hub.NewConsumer()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		consumer.Close()
		slog.Error("WebSocket upgrade failed",
			log.SessionID(sess.ID),
			log.Error(err))
		return nil
	}

	client := &Client{
		session:  sess,
		conn:     conn,
		consumer: consumer,
	}
	client.minVersion = client.sendSubscribeState()
	client.filter = BuildFilter(sess.ID, &api.ClientSubscription{})
	return client
}

func (s *Server) handleWebSocket(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	client := HandleWebSocket(s.eventHub, sess, c.Writer, c.Request)
	if client == nil {
		return
	}

	s.registerWebSocket(client)
	go func() {
		defer s.unregisterWebSocket(client)
		client.run()
	}()
}

// Close disconnects the client
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		_ = c.conn.Close()
	})
}

func (c *Client) run() {
	defer func() {
		c.consumer.Close()
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	incoming := make(chan []byte, incomingBufferSize)
	go c.readMessages(incoming)

	for {
		select {
		case message, ok := <-incoming:
			if !ok {
				return
			}
			c.handleSubscribe(message)

		case event, ok := <-c.consumer.Receive():
			if !ok {
				return
			}
			if !c.sendEventIfMatched(event) {
				return
			}

		case <-ticker.C:
			if !c.sendPing() {
				return
			}
		}
	}
}

func (c *Client) readMessages(incoming chan []byte) {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			close(incoming)
			return
		}
		incoming <- message
	}
}

// handleSubscribe narrows the event types the client receives. The
// session filter always applies
func (c *Client) handleSubscribe(message []byte) {
	var sub api.SubscribeRequest
	if err := json.Unmarshal(message, &sub); err != nil {
		slog.Error("Failed to parse WebSocket message",
			log.SessionID(c.session.ID),
			log.Error(err))
		return
	}

	if sub.Type != subscribeType {
		return
	}

	c.filter = BuildFilter(c.session.ID, &sub.Data)
}

func (c *Client) sendSubscribeState() int64 {
	res := c.session.Response()
	data, err := json.Marshal(res)
	if err != nil {
		slog.Error("Failed to marshal session",
			log.SessionID(c.session.ID),
			log.Error(err))
		return res.Version
	}

	msg := api.SubscribedResult{
		Type:      subscribedType,
		SessionID: c.session.ID,
		Data:      data,
		Version:   res.Version,
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		slog.Error("WebSocket write failed",
			slog.String("context", subscribedType),
			log.Error(err))
	}
	return res.Version
}

func (c *Client) sendEventIfMatched(event *api.ChangeEvent) bool {
	since := events.FilterSince(c.minVersion)
	if !since(event) || !c.filter(event) {
		return true
	}

	wsEvent, err := transformEvent(event)
	if err != nil {
		slog.Error("Failed to marshal event",
			log.SessionID(event.SessionID),
			log.Error(err))
		return true
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(wsEvent); err != nil {
		slog.Error("WebSocket write failed",
			log.Error(err))
		return false
	}
	return true
}

func transformEvent(ev *api.ChangeEvent) (*api.WebSocketEvent, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &api.WebSocketEvent{
		Type:      ev.Type,
		SessionID: ev.SessionID,
		Data:      data,
		Timestamp: ev.Timestamp,
		Version:   ev.Version,
	}, nil
}

func (c *Client) sendPing() bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteMessage(websocket.PingMessage, nil)
	return err == nil
}

// BuildFilter creates an event filter for one session, narrowed to the
// subscribed event types if any are given
func BuildFilter(
	id api.SessionID, sub *api.ClientSubscription,
) events.EventFilter {
	sessionFilter := events.FilterSession(id)
	if len(sub.EventTypes) == 0 {
		return sessionFilter
	}
	return events.AndFilters(
		sessionFilter, events.FilterEvents(sub.EventTypes...),
	)
}
