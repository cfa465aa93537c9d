package session

import (
	"context"
	"log/slog"

	"github.com/dstanton/trivianight/internal/dependencies/clock"
	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/services/registry"
	"github.com/dstanton/trivianight/internal/services/round"
)

// Coordinator binds connection-level events to registry and round
// operations and emits the resulting broadcasts. Each request-type
// method returns nil or a domain error; the transport adapter forwards
// the result as the request's acknowledgment, exactly once, so a
// client is never left waiting. Domain errors go back to the sender
// only, never to the room, and are never fatal.
type Coordinator struct {
	registry    *registry.Service
	rounds      *round.Controller
	broadcaster Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

// NewCoordinator creates a session Coordinator
func NewCoordinator(
	registry *registry.Service,
	rounds *round.Controller,
	broadcaster Broadcaster,
	clock clock.Clock,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		registry:    registry,
		rounds:      rounds,
		broadcaster: broadcaster,
		clock:       clock,
		logger:      logger.With(slog.String("component", "session")),
	}
}

// Join registers the connection in a room and announces it. The
// joiner gets a welcome message; everyone else gets a join notice;
// the whole room gets a fresh membership snapshot. On failure nothing
// is registered and nothing is broadcast.
func (c *Coordinator) Join(ctx context.Context, id model.ConnectionID, displayName, roomName string) error {
	player, err := c.registry.Join(ctx, id, displayName, roomName)
	if err != nil {
		return err
	}

	c.broadcaster.Subscribe(id, player.Room)

	now := c.clock.Now()
	c.broadcaster.ToConnection(id, model.EventMessage,
		model.FormatMessage(model.AdminName, "Welcome!", now))
	c.broadcaster.ToRoomExcept(id, player.Room, model.EventMessage,
		model.FormatMessage(model.AdminName, player.DisplayName+" has joined the game!", now))

	c.broadcastSnapshot(ctx, player.Room)
	return nil
}

// SendMessage relays a chat message from a registered connection to
// its whole room, sender included.
func (c *Coordinator) SendMessage(ctx context.Context, id model.ConnectionID, text string) error {
	player, err := c.registry.Lookup(ctx, id)
	if err != nil {
		return err
	}

	c.broadcaster.ToRoom(player.Room, model.EventMessage,
		model.FormatMessage(player.DisplayName, text, c.clock.Now()))
	return nil
}

// RequestQuestion posts a new question for the player's room and
// broadcasts it. The provider fetch may suspend; membership may change
// underneath it, which is fine: the broadcast goes to whoever is in
// the room when the question lands, even nobody.
func (c *Coordinator) RequestQuestion(ctx context.Context, id model.ConnectionID) error {
	player, err := c.registry.Lookup(ctx, id)
	if err != nil {
		return err
	}

	posted, err := c.rounds.PostQuestion(ctx, player.Room)
	if err != nil {
		return err
	}

	c.broadcaster.ToRoom(player.Room, model.EventQuestion, model.QuestionPayload{
		PlayerName: player.DisplayName,
		Question:   posted.Question,
		Answers:    posted.Answers,
		CreatedAt:  posted.PostedAt,
	})
	return nil
}

// SubmitAnswer records a submission against the room's current round
// and shows the answer to the whole room along with the round-over
// flag that unlocks the reveal action.
func (c *Coordinator) SubmitAnswer(ctx context.Context, id model.ConnectionID, answer string) error {
	player, err := c.registry.Lookup(ctx, id)
	if err != nil {
		return err
	}

	over, err := c.rounds.RecordAnswer(ctx, player.Room)
	if err != nil {
		return err
	}

	c.broadcaster.ToRoom(player.Room, model.EventAnswer, model.AnswerPayload{
		ChatMessage: model.FormatMessage(player.DisplayName, answer, c.clock.Now()),
		IsRoundOver: over,
	})
	return nil
}

// RevealAnswer broadcasts the current round's correct answer to the
// room and marks the round revealed.
func (c *Coordinator) RevealAnswer(ctx context.Context, id model.ConnectionID) error {
	player, err := c.registry.Lookup(ctx, id)
	if err != nil {
		return err
	}

	correct, err := c.rounds.RevealAnswer(ctx, player.Room)
	if err != nil {
		return err
	}

	c.broadcaster.ToRoom(player.Room, model.EventCorrectAnswer,
		model.FormatMessage(player.DisplayName, correct, c.clock.Now()))
	return nil
}

// Disconnect removes the connection's registration, if any, and tells
// the remaining room members. There is no acknowledgment for a
// disconnect; it is idempotent and never fails loudly.
func (c *Coordinator) Disconnect(ctx context.Context, id model.ConnectionID) {
	player, err := c.registry.Leave(ctx, id)
	if err != nil {
		c.logger.Error("disconnect cleanup failed",
			slog.String("connection_id", string(id)),
			slog.Any("error", err))
		return
	}
	if player == nil {
		// Connection never joined a room
		return
	}

	c.broadcaster.Unsubscribe(id, player.Room)

	c.broadcaster.ToRoom(player.Room, model.EventMessage,
		model.FormatMessage(model.AdminName, player.DisplayName+" has left!", c.clock.Now()))
	c.broadcastSnapshot(ctx, player.Room)
}

func (c *Coordinator) broadcastSnapshot(ctx context.Context, room model.RoomKey) {
	snapshot, err := c.registry.Snapshot(ctx, room)
	if err != nil {
		c.logger.Error("membership snapshot failed",
			slog.String("room", string(room)),
			slog.Any("error", err))
		return
	}
	c.broadcaster.ToRoom(room, model.EventRoom, snapshot)
}
