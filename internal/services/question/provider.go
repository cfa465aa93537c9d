package question

import (
	"context"

	"github.com/dstanton/trivianight/internal/model"
)

// Provider is the external trivia question source. FetchQuestion may
// be slow or fail; failures propagate to the caller as a round-post
// failure, never silently substituted.
type Provider interface {
	FetchQuestion(ctx context.Context) (*model.Question, error)
}
