package mocks

import (
	"context"

	"github.com/dstanton/trivianight/internal/model"
)

// MockQuestionProvider is a mock question source for testing
type MockQuestionProvider struct {
	// Questions is a queue of results to return from FetchQuestion
	Questions []*model.Question
	index     int

	// Err, when set, is returned instead of a question
	Err error

	// FetchStarted, when non-nil, receives a signal as each fetch
	// begins, and Release gates its completion. Used to exercise
	// interleavings while a fetch is in flight.
	FetchStarted chan struct{}
	Release      chan struct{}

	// Calls counts FetchQuestion invocations
	Calls int
}

// NewMockQuestionProvider creates a new MockQuestionProvider
func NewMockQuestionProvider() *MockQuestionProvider {
	return &MockQuestionProvider{}
}

// QueueQuestion adds questions to the result queue
func (p *MockQuestionProvider) QueueQuestion(questions ...*model.Question) {
	p.Questions = append(p.Questions, questions...)
}

// FetchQuestion returns the next queued question, the configured
// error, or model.ErrQuestionUnavailable when the queue is empty
func (p *MockQuestionProvider) FetchQuestion(ctx context.Context) (*model.Question, error) {
	p.Calls++
	if p.FetchStarted != nil {
		p.FetchStarted <- struct{}{}
		<-p.Release
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if p.index >= len(p.Questions) {
		return nil, model.ErrQuestionUnavailable
	}
	question := p.Questions[p.index]
	p.index++
	return question, nil
}
