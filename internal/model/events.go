package model

import "time"

// EventName identifies a server-pushed event on the wire.
type EventName string

// Events broadcast by the session coordinator. Names match what the
// browser client listens for.
const (
	EventMessage       EventName = "message"
	EventRoom          EventName = "room"
	EventQuestion      EventName = "question"
	EventAnswer        EventName = "answer"
	EventCorrectAnswer EventName = "correctAnswer"
)

// PlayerSummary is the membership view exposed to clients.
type PlayerSummary struct {
	DisplayName string `json:"playerName"`
}

// RoomSnapshot is the payload of the "room" event: current membership
// in join order.
type RoomSnapshot struct {
	Room    RoomKey         `json:"room"`
	Players []PlayerSummary `json:"players"`
}

// QuestionPayload is the payload of the "question" event. PlayerName
// is the player who requested the question.
type QuestionPayload struct {
	PlayerName string    `json:"playerName"`
	Question   string    `json:"question"`
	Answers    []string  `json:"answers"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AnswerPayload is the payload of the "answer" event: the submitted
// answer shown to the room plus the round-over flag that unlocks the
// reveal action client-side.
type AnswerPayload struct {
	ChatMessage
	IsRoundOver bool `json:"isRoundOver"`
}
