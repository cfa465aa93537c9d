package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// PlayerTTL bounds how long a registration outlives its process.
	// Player records are transient by nature (one per live connection)
	// so a stale record should not block a name forever.
	PlayerTTL time.Duration

	// RoundTTL bounds how long a room keeps its last round.
	RoundTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PlayerTTL:    24 * time.Hour,
		RoundTTL:     24 * time.Hour,
	}
}
