package config

import (
	"github.com/jessevdk/go-flags"
	"go.trai.ch/zerr"
)

const (
	// DefaultStatePath is where the file task table lives when no database is configured.
	DefaultStatePath = ".taskspec/instances.json"
	// DefaultQueue is the asynq queue specs are published on.
	DefaultQueue = "taskspec"
	// DefaultParallelism bounds concurrent store and publish calls during submit.
	DefaultParallelism = 8
)

// Settings holds the process configuration read from the environment.
type Settings struct {
	StatePath   string `long:"state-path" env:"TASKSPEC_STATE_PATH" default:".taskspec/instances.json" description:"Path of the file task table"`
	DatabaseURL string `long:"database-url" env:"TASKSPEC_DATABASE_URL" description:"Postgres connection string; selects the Postgres task table"`
	RedisAddr   string `long:"redis-addr" env:"TASKSPEC_REDIS_ADDR" description:"Redis address; enables the asynq transport"`
	Queue       string `long:"queue" env:"TASKSPEC_QUEUE" default:"taskspec" description:"Queue specs are published on"`
	Parallelism int    `long:"parallelism" env:"TASKSPEC_PARALLELISM" default:"8" description:"Concurrent store and publish calls"`
	LogLevel    string `long:"log-level" env:"TASKSPEC_LOG_LEVEL" default:"info" description:"Minimum log level"`
}

// LoadSettings reads Settings from the environment, applying defaults for unset values.
func LoadSettings() (*Settings, error) {
	var s Settings
	parser := flags.NewParser(&s, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(nil); err != nil {
		return nil, zerr.Wrap(err, "failed to read settings from environment")
	}

	if s.StatePath == "" {
		s.StatePath = DefaultStatePath
	}
	if s.Queue == "" {
		s.Queue = DefaultQueue
	}
	if s.Parallelism <= 0 {
		s.Parallelism = DefaultParallelism
	}
	return &s, nil
}

// UsePostgres reports whether the Postgres task table is configured.
func (s *Settings) UsePostgres() bool {
	return s.DatabaseURL != ""
}

// UseQueue reports whether the asynq transport is configured.
func (s *Settings) UseQueue() bool {
	return s.RedisAddr != ""
}
