package model

import (
	"strings"
	"time"
)

// ConnectionID uniquely identifies a live client connection, assigned
// by the transport at upgrade time
type ConnectionID string

// RoomKey names a broadcast group. Rooms are value keys, not entities:
// a room exists implicitly while players or round state reference it.
type RoomKey string

// Player represents a session participant, keyed by its connection.
// Records are never mutated in place; a rejoin is remove + re-add.
type Player struct {
	ConnectionID ConnectionID `json:"connection_id"`
	DisplayName  string       `json:"display_name"`
	Room         RoomKey      `json:"room"`
	JoinedAt     time.Time    `json:"joined_at"`
}

// NormalizeName produces the form used for uniqueness comparison:
// trimmed and lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeRoom canonicalizes a room key: trimmed and lower-cased,
// so "Lobby" and "lobby" are the same broadcast group.
func NormalizeRoom(room string) RoomKey {
	return RoomKey(strings.ToLower(strings.TrimSpace(room)))
}
