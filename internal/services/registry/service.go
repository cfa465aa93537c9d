package registry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dstanton/trivianight/internal/dependencies/clock"
	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/storage"
)

// Service is the player registry: it maps connection identity to
// (display name, room) and enforces per-room name uniqueness. It has
// no knowledge of trivia rounds.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// Join registers a connection as a named player in a room. The name
// is trimmed and the room key case-normalized before validation.
// Fails with model.ErrNameTaken if another player in the room already
// holds the name (case-insensitive); no mutation occurs on failure.
func (s *Service) Join(ctx context.Context, id model.ConnectionID, displayName, room string) (*model.Player, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, model.ErrNameRequired
	}
	roomKey := model.NormalizeRoom(room)
	if roomKey == "" {
		return nil, model.ErrRoomRequired
	}

	player := &model.Player{
		ConnectionID: id,
		DisplayName:  displayName,
		Room:         roomKey,
		JoinedAt:     s.clock.Now(),
	}

	if err := s.storage.AddPlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player joined",
		slog.String("connection_id", string(id)),
		slog.String("player", displayName),
		slog.String("room", string(roomKey)))

	return player, nil
}

// Lookup resolves the player behind a connection. Every event after
// join is authorized through this.
func (s *Service) Lookup(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// Leave removes and returns a connection's registration. Idempotent:
// an already-absent connection yields (nil, nil).
func (s *Service) Leave(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	player, err := s.storage.RemovePlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if player != nil {
		s.logger.Info("player left",
			slog.String("connection_id", string(id)),
			slog.String("player", player.DisplayName),
			slog.String("room", string(player.Room)))
	}
	return player, nil
}

// Snapshot returns a room's current membership in join order.
func (s *Service) Snapshot(ctx context.Context, room model.RoomKey) (*model.RoomSnapshot, error) {
	players, err := s.storage.ListPlayers(ctx, room)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.PlayerSummary, 0, len(players))
	for _, player := range players {
		summaries = append(summaries, model.PlayerSummary{DisplayName: player.DisplayName})
	}

	return &model.RoomSnapshot{
		Room:    room,
		Players: summaries,
	}, nil
}
