package model

import "time"

// RoundStatus is the lifecycle state of a room's trivia round.
// There is no explicit idle status: a room with no round simply has
// no Round record.
type RoundStatus string

const (
	RoundStatusQuestionPosted RoundStatus = "question_posted"
	RoundStatusRevealed       RoundStatus = "revealed"
)

// Round is one question/answer cycle scoped to a room. A new question
// always supersedes the previous round unconditionally.
type Round struct {
	Status        RoundStatus `json:"status"`
	Question      string      `json:"question"`
	Answers       []string    `json:"answers"`
	CorrectAnswer string      `json:"correct_answer"`
	PostedAt      time.Time   `json:"posted_at"`

	// RoundOver is set once any answer has been submitted since the
	// question was posted. It never resets without a new question.
	RoundOver bool `json:"round_over"`
}

// Question is what the external question provider returns.
type Question struct {
	Prompt        string
	Answers       []string
	CorrectAnswer string
}
