package model

import "time"

// AdminName attributes server-generated chat entries (welcome, join
// and leave notices).
const AdminName = "Admin"

// ChatMessage is a timestamped, attributed chat or event entry.
type ChatMessage struct {
	PlayerName string    `json:"playerName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FormatMessage builds a chat entry. It is a pure function; callers
// supply the timestamp so it stays mockable.
func FormatMessage(playerName, text string, at time.Time) ChatMessage {
	return ChatMessage{
		PlayerName: playerName,
		Text:       text,
		CreatedAt:  at,
	}
}
