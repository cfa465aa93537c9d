package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	bind            string
	port            int
	storageType     string
	redisURL        string
	questionURL     string
	questionTimeout time.Duration
	logLevel        string
	logFormat       string
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storageType == "redis" && c.redisURL == "" {
		return errors.New("--redis-url required when --storage is redis")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "trivianight",
		Short:         "Room-based trivia sessions with live chat, over websockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TRIVIA_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TRIVIA_PORT)")
	fs.StringVar(&cfg.storageType, "storage", "memory", "storage backend, memory or redis (env: TRIVIA_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: TRIVIA_REDIS_URL)")
	fs.StringVar(&cfg.questionURL, "question-url", "", "trivia question API endpoint (env: TRIVIA_QUESTION_URL)")
	fs.DurationVar(&cfg.questionTimeout, "question-timeout", 10*time.Second, "trivia question API timeout (env: TRIVIA_QUESTION_TIMEOUT)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: TRIVIA_LOG_LEVEL)")
	fs.StringVar(&cfg.logFormat, "log-format", "json", "log format: json or text (env: TRIVIA_LOG_FORMAT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
