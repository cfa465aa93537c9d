package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dstanton/trivianight/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour
	cfg.RoundTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) player(id, name, room string) *model.Player {
	return &model.Player{
		ConnectionID: model.ConnectionID(id),
		DisplayName:  name,
		Room:         model.RoomKey(room),
		JoinedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Player tests

func (s *StorageSuite) TestAddAndGetPlayer() {
	err := s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby"))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.DisplayName)
	s.Equal(model.RoomKey("lobby"), retrieved.Room)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestAddPlayerNameTaken() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))

	err := s.storage.AddPlayer(s.ctx, s.player("conn-2", "ALICE", "lobby"))
	s.ErrorIs(err, model.ErrNameTaken)

	_, err = s.storage.GetPlayer(s.ctx, "conn-2")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSameNameDifferentRooms() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))
	s.NoError(s.storage.AddPlayer(s.ctx, s.player("conn-2", "Alice", "den")))
}

func (s *StorageSuite) TestRemovePlayer() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))

	removed, err := s.storage.RemovePlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Require().NotNil(removed)
	s.Equal("Alice", removed.DisplayName)

	_, err = s.storage.GetPlayer(s.ctx, "conn-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRemovePlayerIdempotent() {
	removed, err := s.storage.RemovePlayer(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Nil(removed)
}

func (s *StorageSuite) TestRemoveFreesName() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))

	_, err := s.storage.RemovePlayer(s.ctx, "conn-1")
	s.Require().NoError(err)

	s.NoError(s.storage.AddPlayer(s.ctx, s.player("conn-2", "alice", "lobby")))
}

func (s *StorageSuite) TestListPlayersJoinOrder() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-2", "Bob", "lobby")))
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-3", "Cara", "lobby")))

	_, err := s.storage.RemovePlayer(s.ctx, "conn-2")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].DisplayName)
	s.Equal("Cara", players[1].DisplayName)
}

func (s *StorageSuite) TestListPlayersEmptyRoom() {
	players, err := s.storage.ListPlayers(s.ctx, "nowhere")
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestListPlayersSkipsExpiredRecords() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-2", "Bob", "lobby")))

	// Expire one player record while it remains in the member list
	s.mini.FastForward(2 * time.Hour)
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-3", "Cara", "lobby")))

	players, err := s.storage.ListPlayers(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Cara", players[0].DisplayName)
}

// Round tests

func (s *StorageSuite) TestSaveAndGetRound() {
	round := &model.Round{
		Status:        model.RoundStatusQuestionPosted,
		Question:      "What is the capital of France?",
		Answers:       []string{"Paris", "Lyon", "Nice", "Lille"},
		CorrectAnswer: "Paris",
		PostedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", round))

	retrieved, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Equal(round.Question, retrieved.Question)
	s.Equal(round.Answers, retrieved.Answers)
	s.Equal(round.CorrectAnswer, retrieved.CorrectAnswer)
}

func (s *StorageSuite) TestGetRoundNoActiveRound() {
	_, err := s.storage.GetRound(s.ctx, "lobby")
	s.ErrorIs(err, model.ErrNoActiveRound)
}

func (s *StorageSuite) TestSaveRoundReplaces() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q1"}))
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q2"}))

	retrieved, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Equal("Q2", retrieved.Question)
}

func (s *StorageSuite) TestMarkRoundOver() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q1"}))

	over, err := s.storage.MarkRoundOver(s.ctx, "lobby")
	s.Require().NoError(err)
	s.True(over)

	round, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.True(round.RoundOver)
	s.Equal("Q1", round.Question)
}

func (s *StorageSuite) TestMarkRoundOverNoRound() {
	_, err := s.storage.MarkRoundOver(s.ctx, "lobby")
	s.ErrorIs(err, model.ErrNoActiveRound)
}

func (s *StorageSuite) TestRevealRound() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{
		Status:        model.RoundStatusQuestionPosted,
		Question:      "Q1",
		CorrectAnswer: "Paris",
	}))

	correct, err := s.storage.RevealRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Equal("Paris", correct)

	round, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Equal(model.RoundStatusRevealed, round.Status)
}

func (s *StorageSuite) TestRevealRoundNoRound() {
	_, err := s.storage.RevealRound(s.ctx, "lobby")
	s.ErrorIs(err, model.ErrNoActiveRound)
}

func (s *StorageSuite) TestDeleteRound() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q1"}))
	s.Require().NoError(s.storage.DeleteRound(s.ctx, "lobby"))

	_, err := s.storage.GetRound(s.ctx, "lobby")
	s.ErrorIs(err, model.ErrNoActiveRound)
}

func (s *StorageSuite) TestDeleteRoundMissing() {
	s.NoError(s.storage.DeleteRound(s.ctx, "lobby"))
}
