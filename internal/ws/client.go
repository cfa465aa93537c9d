package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dstanton/trivianight/internal/model"
)

const sendBufferSize = 16

// SessionHandler is what the transport needs from the session layer:
// one method per inbound event. Request-type methods return the error
// that becomes the acknowledgment.
type SessionHandler interface {
	Join(ctx context.Context, id model.ConnectionID, displayName, room string) error
	SendMessage(ctx context.Context, id model.ConnectionID, text string) error
	RequestQuestion(ctx context.Context, id model.ConnectionID) error
	SubmitAnswer(ctx context.Context, id model.ConnectionID, answer string) error
	RevealAnswer(ctx context.Context, id model.ConnectionID) error
	Disconnect(ctx context.Context, id model.ConnectionID)
}

// Client is one live websocket connection
type Client struct {
	id   model.ConnectionID
	conn *websocket.Conn
	send chan ServerEvent
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to websocket connections and pumps
// frames between the connection and the session layer.
type Handler struct {
	hub     *Hub
	session SessionHandler
	logger  *slog.Logger
}

// NewHandler creates the websocket HTTP handler
func NewHandler(hub *Hub, session SessionHandler, logger *slog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		session: session,
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the connection, assigns it an identity and runs
// the read loop until the peer goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", slog.Any("error", err))
		return
	}

	client := &Client{
		id:   model.ConnectionID(uuid.NewString()),
		conn: conn,
		send: make(chan ServerEvent, sendBufferSize),
	}

	h.hub.register(client)

	go client.writePump()
	h.readPump(client)
}

func (h *Handler) readPump(client *Client) {
	defer func() {
		// The registry outlives the socket only momentarily: the
		// disconnect notice and membership refresh go out before the
		// hub forgets the connection.
		h.session.Disconnect(context.Background(), client.id)
		h.hub.unregister(client)
		_ = client.conn.Close()
	}()

	for {
		var env Envelope
		if err := client.conn.ReadJSON(&env); err != nil {
			return
		}
		h.dispatch(client, env)
	}
}

// dispatch routes one request frame and always acknowledges it,
// success or failure, so the client is never left waiting.
func (h *Handler) dispatch(client *Client, env Envelope) {
	ctx := context.Background()

	var err error
	switch env.Event {
	case EventJoin:
		var data joinData
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = h.session.Join(ctx, client.id, data.PlayerName, data.Room)
		}
	case EventSendMessage:
		var data textData
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = h.session.SendMessage(ctx, client.id, data.Text)
		}
	case EventGetQuestion:
		err = h.session.RequestQuestion(ctx, client.id)
	case EventSendAnswer:
		var data textData
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = h.session.SubmitAnswer(ctx, client.id, data.Text)
		}
	case EventGetAnswer:
		err = h.session.RevealAnswer(ctx, client.id)
	default:
		h.logger.Warn("unknown event",
			slog.String("connection_id", string(client.id)),
			slog.String("event", env.Event))
		h.ack(client, env.ID, "unknown event: "+env.Event)
		return
	}

	if err != nil {
		h.ack(client, env.ID, err.Error())
		return
	}
	h.ack(client, env.ID, "")
}

func (h *Handler) ack(client *Client, id int64, errMsg string) {
	h.hub.mu.RLock()
	defer h.hub.mu.RUnlock()
	h.hub.deliver(client, ServerEvent{
		Event: ackEvent,
		Data:  Ack{ID: id, Error: errMsg},
	})
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		if err := c.conn.WriteJSON(frame); err != nil {
			return
		}
	}
}
