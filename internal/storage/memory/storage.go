package memory

import (
	"context"
	"sync"

	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// All state is process-local and lost on restart.
type Storage struct {
	mu sync.RWMutex

	players map[model.ConnectionID]*model.Player
	// members preserves join order per room
	members map[model.RoomKey][]model.ConnectionID
	// names indexes normalized display name -> connection per room,
	// backing the uniqueness check
	names  map[model.RoomKey]map[string]model.ConnectionID
	rounds map[model.RoomKey]*model.Round
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.ConnectionID]*model.Player),
		members: make(map[model.RoomKey][]model.ConnectionID),
		names:   make(map[model.RoomKey]map[string]model.ConnectionID),
		rounds:  make(map[model.RoomKey]*model.Round),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AddPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := model.NormalizeName(player.DisplayName)
	roomNames := s.names[player.Room]
	if _, taken := roomNames[normalized]; taken {
		return model.ErrNameTaken
	}

	if roomNames == nil {
		roomNames = make(map[string]model.ConnectionID)
		s.names[player.Room] = roomNames
	}
	roomNames[normalized] = player.ConnectionID
	s.players[player.ConnectionID] = player
	s.members[player.Room] = append(s.members[player.Room], player.ConnectionID)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) RemovePlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, nil
	}

	delete(s.players, id)
	delete(s.names[player.Room], model.NormalizeName(player.DisplayName))
	if len(s.names[player.Room]) == 0 {
		delete(s.names, player.Room)
	}

	remaining := s.members[player.Room][:0]
	for _, member := range s.members[player.Room] {
		if member != id {
			remaining = append(remaining, member)
		}
	}
	if len(remaining) == 0 {
		delete(s.members, player.Room)
	} else {
		s.members[player.Room] = remaining
	}

	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, room model.RoomKey) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.members[room]))
	for _, id := range s.members[room] {
		if player, ok := s.players[id]; ok {
			players = append(players, player)
		}
	}
	return players, nil
}

func (s *Storage) SaveRound(ctx context.Context, room model.RoomKey, round *model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[room] = round
	return nil
}

func (s *Storage) GetRound(ctx context.Context, room model.RoomKey) (*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.rounds[room]
	if !ok {
		return nil, model.ErrNoActiveRound
	}
	// Copy so callers never observe a record mid-mutation
	cp := *round
	return &cp, nil
}

func (s *Storage) MarkRoundOver(ctx context.Context, room model.RoomKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[room]
	if !ok {
		return false, model.ErrNoActiveRound
	}
	round.RoundOver = true
	return true, nil
}

func (s *Storage) RevealRound(ctx context.Context, room model.RoomKey) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[room]
	if !ok {
		return "", model.ErrNoActiveRound
	}
	round.Status = model.RoundStatusRevealed
	return round.CorrectAnswer, nil
}

func (s *Storage) DeleteRound(ctx context.Context, room model.RoomKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, room)
	return nil
}
