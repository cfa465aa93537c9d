package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dstanton/trivianight/internal/dependencies/clock"
	"github.com/dstanton/trivianight/internal/dependencies/random"
	"github.com/dstanton/trivianight/internal/services/question"
	"github.com/dstanton/trivianight/internal/services/registry"
	"github.com/dstanton/trivianight/internal/services/round"
	"github.com/dstanton/trivianight/internal/session"
	"github.com/dstanton/trivianight/internal/storage"
	"github.com/dstanton/trivianight/internal/storage/memory"
	redisstorage "github.com/dstanton/trivianight/internal/storage/redis"
	"github.com/dstanton/trivianight/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry        *registry.Service
	RoundController *round.Controller
	Coordinator     *session.Coordinator
	Hub             *ws.Hub
	WSHandler       http.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// QuestionConfig holds trivia provider settings (optional)
	// If zero value, defaults to question.DefaultOpenTDBConfig()
	QuestionConfig question.OpenTDBConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	questionCfg := cfg.QuestionConfig
	if questionCfg.BaseURL == "" {
		questionCfg = question.DefaultOpenTDBConfig()
	}
	provider := question.NewOpenTDB(questionCfg, rnd, logger)

	return newWithDependencies(store, provider, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, provider question.Provider, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	registryService := registry.New(store, clk, logger)
	roundController := round.NewController(store, provider, clk, logger)
	hub := ws.NewHub(logger)
	coordinator := session.NewCoordinator(registryService, roundController, hub, clk, logger)
	wsHandler := ws.NewHandler(hub, coordinator, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Registry:        registryService,
		RoundController: roundController,
		Coordinator:     coordinator,
		Hub:             hub,
		WSHandler:       wsHandler,
	}
}
