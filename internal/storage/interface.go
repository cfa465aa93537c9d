package storage

import (
	"context"

	"github.com/dstanton/trivianight/internal/model"
)

// Storage defines the interface for session state persistence: the
// player registry and per-room round records.
type Storage interface {
	// Player registry operations

	// AddPlayer inserts a player record. The insert is atomic and
	// all-or-nothing: it fails with model.ErrNameTaken if another
	// player in the same room has the same normalized display name.
	AddPlayer(ctx context.Context, player *model.Player) error

	// GetPlayer looks up a player by connection identity, returning
	// model.ErrPlayerNotFound if the connection is unregistered.
	GetPlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error)

	// RemovePlayer removes and returns the record for a connection.
	// It is idempotent: a second call returns (nil, nil).
	RemovePlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error)

	// ListPlayers returns a room's players in join order.
	ListPlayers(ctx context.Context, room model.RoomKey) ([]*model.Player, error)

	// Round operations

	// SaveRound stores a room's round, replacing any prior round
	// unconditionally. The replacement is atomic: readers never see
	// a partially written record.
	SaveRound(ctx context.Context, room model.RoomKey, round *model.Round) error

	// GetRound returns a room's current round, or
	// model.ErrNoActiveRound if no question was ever posted.
	GetRound(ctx context.Context, room model.RoomKey) (*model.Round, error)

	// MarkRoundOver sets the round-over flag on the room's current
	// round in one atomic step and returns it. A round installed
	// concurrently is never reverted by the flag write. Returns
	// model.ErrNoActiveRound if the room has no round.
	MarkRoundOver(ctx context.Context, room model.RoomKey) (bool, error)

	// RevealRound marks the room's current round revealed in one
	// atomic step and returns its correct answer. Returns
	// model.ErrNoActiveRound if the room has no round.
	RevealRound(ctx context.Context, room model.RoomKey) (string, error)

	// DeleteRound discards a room's round state, if any.
	DeleteRound(ctx context.Context, room model.RoomKey) error
}
