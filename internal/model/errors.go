package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrNameRequired   = errors.New("display name is required")
	ErrRoomRequired   = errors.New("room is required")
	ErrNameTaken      = errors.New("display name is already taken in this room")
	ErrPlayerNotFound = errors.New("player not found")

	// Round errors
	ErrNoActiveRound = errors.New("no question has been posted for this room")

	// Question provider errors
	ErrQuestionUnavailable = errors.New("question provider unavailable")
)
