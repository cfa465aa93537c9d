package ws

import "encoding/json"

// Envelope is a client request frame. ID correlates the request with
// its acknowledgment; Data is decoded per event type.
type Envelope struct {
	ID    int64           `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound event names; these match what the browser client emits.
const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventGetQuestion = "getQuestion"
	EventSendAnswer  = "sendAnswer"
	EventGetAnswer   = "getAnswer"
)

// joinData is the payload of a join request
type joinData struct {
	PlayerName string `json:"playerName"`
	Room       string `json:"room"`
}

// textData carries a chat message or a submitted answer
type textData struct {
	Text string `json:"text"`
}

// ServerEvent is a server push frame
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Ack acknowledges a client request. Error is empty on success; on
// failure it carries a human-readable message for the sender only.
type Ack struct {
	ID    int64  `json:"id"`
	Error string `json:"error,omitempty"`
}

// ackEvent is the event name used for acknowledgment frames
const ackEvent = "ack"
