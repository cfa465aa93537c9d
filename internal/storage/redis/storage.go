package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dstanton/trivianight/internal/model"
	"github.com/dstanton/trivianight/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player registry operations

func (s *Storage) AddPlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// HSetNX is the atomic uniqueness check: first writer of a
	// normalized name wins, everyone else gets ErrNameTaken with no
	// registry mutation.
	normalized := model.NormalizeName(player.DisplayName)
	claimed, err := s.client.HSetNX(ctx, roomNamesKey(player.Room), normalized, string(player.ConnectionID)).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrNameTaken
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ConnectionID), data, s.cfg.PlayerTTL)
	pipe.RPush(ctx, roomMembersKey(player.Room), string(player.ConnectionID))
	if s.cfg.PlayerTTL > 0 {
		pipe.Expire(ctx, roomMembersKey(player.Room), s.cfg.PlayerTTL)
		pipe.Expire(ctx, roomNamesKey(player.Room), s.cfg.PlayerTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		// Roll the name claim back so a retry is possible
		_ = s.client.HDel(ctx, roomNamesKey(player.Room), normalized).Err()
		return err
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) RemovePlayer(ctx context.Context, id model.ConnectionID) (*model.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.HDel(ctx, roomNamesKey(player.Room), model.NormalizeName(player.DisplayName))
	pipe.LRem(ctx, roomMembersKey(player.Room), 0, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, room model.RoomKey) ([]*model.Player, error) {
	ids, err := s.client.LRange(ctx, roomMembersKey(room), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.ConnectionID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Expired player record still listed; skip it
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, room model.RoomKey, round *model.Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roundKey(room), data, s.cfg.RoundTTL).Err()
}

func (s *Storage) GetRound(ctx context.Context, room model.RoomKey) (*model.Round, error) {
	data, err := s.client.Get(ctx, roundKey(room)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoActiveRound
		}
		return nil, err
	}

	var round model.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

// txRetries bounds optimistic-transaction retries when a watched round
// key changes underneath a read-modify-write.
const txRetries = 5

func (s *Storage) MarkRoundOver(ctx context.Context, room model.RoomKey) (bool, error) {
	err := s.updateRound(ctx, room, func(round *model.Round) {
		round.RoundOver = true
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) RevealRound(ctx context.Context, room model.RoomKey) (string, error) {
	var correct string
	err := s.updateRound(ctx, room, func(round *model.Round) {
		round.Status = model.RoundStatusRevealed
		correct = round.CorrectAnswer
	})
	if err != nil {
		return "", err
	}
	return correct, nil
}

// updateRound applies mutate to the room's round under WATCH so the
// write-back aborts if another handler replaced the round in between;
// a concurrently posted question is never overwritten with stale state.
func (s *Storage) updateRound(ctx context.Context, room model.RoomKey, mutate func(*model.Round)) error {
	key := roundKey(room)

	for attempt := 0; attempt < txRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return model.ErrNoActiveRound
				}
				return err
			}

			var round model.Round
			if err := json.Unmarshal(data, &round); err != nil {
				return err
			}
			mutate(&round)

			updated, err := json.Marshal(&round)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, s.cfg.RoundTTL)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func (s *Storage) DeleteRound(ctx context.Context, room model.RoomKey) error {
	return s.client.Del(ctx, roundKey(room)).Err()
}
