package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dstanton/trivianight/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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

	err := s.storage.AddPlayer(s.ctx, s.player("conn-2", "Alice", "lobby"))
	s.ErrorIs(err, model.ErrNameTaken)

	// The failed insert must not register the connection
	_, err = s.storage.GetPlayer(s.ctx, "conn-2")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestAddPlayerNameTakenCaseInsensitive() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))

	err := s.storage.AddPlayer(s.ctx, s.player("conn-2", "ALICE", "lobby"))
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestSameNameDifferentRooms() {
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-2", "Alice", "den")))

	players, err := s.storage.ListPlayers(s.ctx, "den")
	s.Require().NoError(err)
	s.Len(players, 1)
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
	s.Require().NoError(s.storage.AddPlayer(s.ctx, s.player("conn-1", "Alice", "lobby")))

	_, err := s.storage.RemovePlayer(s.ctx, "conn-1")
	s.Require().NoError(err)

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

// Round tests

func (s *StorageSuite) TestSaveAndGetRound() {
	round := &model.Round{
		Status:        model.RoundStatusQuestionPosted,
		Question:      "What is the capital of France?",
		Answers:       []string{"Paris", "Lyon", "Nice", "Lille"},
		CorrectAnswer: "Paris",
	}

	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", round))

	retrieved, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.Equal(round.Question, retrieved.Question)
	s.Equal(round.CorrectAnswer, retrieved.CorrectAnswer)
}

func (s *StorageSuite) TestGetRoundNoActiveRound() {
	_, err := s.storage.GetRound(s.ctx, "lobby")
	s.ErrorIs(err, model.ErrNoActiveRound)
}

func (s *StorageSuite) TestGetRoundReturnsCopy() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q1"}))

	first, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	first.RoundOver = true

	second, err := s.storage.GetRound(s.ctx, "lobby")
	s.Require().NoError(err)
	s.False(second.RoundOver)
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

func (s *StorageSuite) TestRoundsScopedPerRoom() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, "lobby", &model.Round{Question: "Q1"}))

	_, err := s.storage.GetRound(s.ctx, "den")
	s.ErrorIs(err, model.ErrNoActiveRound)
}
