package round

import (
	"context"
	"log/slog"

	"github.com/dstanton/trivianight/internal/dependencies/clock"
	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/services/question"
	"github.com/dstanton/trivianight/internal/storage"
)

// Controller manages the per-room round state machine. It is coupled
// to the registry only through the room key: membership changes never
// touch round state and vice versa.
type Controller struct {
	storage  storage.Storage
	provider question.Provider
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new round Controller
func NewController(storage storage.Storage, provider question.Provider, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  storage,
		provider: provider,
		clock:    clock,
		logger:   logger.With(slog.String("component", "round")),
	}
}

// PostQuestion fetches a question from the provider and installs a
// fresh round for the room, unconditionally superseding any prior
// round. The fetch may suspend; no partial round state is visible to
// other handlers until the single save at the end. Provider failures
// propagate and leave existing round state untouched.
func (c *Controller) PostQuestion(ctx context.Context, room model.RoomKey) (*model.Round, error) {
	fetched, err := c.provider.FetchQuestion(ctx)
	if err != nil {
		c.logger.Warn("question fetch failed",
			slog.String("room", string(room)),
			slog.Any("error", err))
		return nil, err
	}

	round := &model.Round{
		Status:        model.RoundStatusQuestionPosted,
		Question:      fetched.Prompt,
		Answers:       fetched.Answers,
		CorrectAnswer: fetched.CorrectAnswer,
		PostedAt:      c.clock.Now(),
		RoundOver:     false,
	}

	if err := c.storage.SaveRound(ctx, room, round); err != nil {
		return nil, err
	}

	c.logger.Info("question posted", slog.String("room", string(room)))
	return round, nil
}

// RecordAnswer marks the room's round as having received at least one
// submission and returns the round-over flag. The flag is monotonic:
// repeated submissions keep it true until a new question resets it.
// The mutation is a single atomic storage step, so it can never revert
// a round installed by a concurrent question post.
// Submissions after a reveal are accepted; the browser client
// re-enables its submit button once the answer is shown, so the round
// loops back to an answerable state rather than locking out.
func (c *Controller) RecordAnswer(ctx context.Context, room model.RoomKey) (bool, error) {
	return c.storage.MarkRoundOver(ctx, room)
}

// RevealAnswer returns the stored correct answer and marks the round
// revealed, in a single atomic storage step. Fails with
// model.ErrNoActiveRound if no question was ever posted for the room.
func (c *Controller) RevealAnswer(ctx context.Context, room model.RoomKey) (string, error) {
	correct, err := c.storage.RevealRound(ctx, room)
	if err != nil {
		return "", err
	}

	c.logger.Info("answer revealed", slog.String("room", string(room)))
	return correct, nil
}

// GetRound returns the room's current round state.
func (c *Controller) GetRound(ctx context.Context, room model.RoomKey) (*model.Round, error) {
	return c.storage.GetRound(ctx, room)
}

// ClearRound discards the room's round state. Round records otherwise
// persist until superseded by the next question.
func (c *Controller) ClearRound(ctx context.Context, room model.RoomKey) error {
	return c.storage.DeleteRound(ctx, room)
}
