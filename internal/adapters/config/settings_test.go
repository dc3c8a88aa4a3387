package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskspec/internal/adapters/config"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{
		"TASKSPEC_STATE_PATH",
		"TASKSPEC_DATABASE_URL",
		"TASKSPEC_REDIS_ADDR",
		"TASKSPEC_QUEUE",
		"TASKSPEC_PARALLELISM",
		"TASKSPEC_LOG_LEVEL",
	} {
		// Setenv restores the original value after the test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := config.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultStatePath, s.StatePath)
	assert.Equal(t, config.DefaultQueue, s.Queue)
	assert.Equal(t, config.DefaultParallelism, s.Parallelism)
	assert.False(t, s.UsePostgres())
	assert.False(t, s.UseQueue())
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	t.Setenv("TASKSPEC_STATE_PATH", "/tmp/state.json")
	t.Setenv("TASKSPEC_DATABASE_URL", "postgres://localhost:5432/tasks")
	t.Setenv("TASKSPEC_REDIS_ADDR", "localhost:6379")
	t.Setenv("TASKSPEC_QUEUE", "critical")
	t.Setenv("TASKSPEC_PARALLELISM", "3")
	t.Setenv("TASKSPEC_LOG_LEVEL", "debug")

	s, err := config.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/state.json", s.StatePath)
	assert.Equal(t, "postgres://localhost:5432/tasks", s.DatabaseURL)
	assert.Equal(t, "localhost:6379", s.RedisAddr)
	assert.Equal(t, "critical", s.Queue)
	assert.Equal(t, 3, s.Parallelism)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.UsePostgres())
	assert.True(t, s.UseQueue())
}

func TestLoadSettings_InvalidParallelism(t *testing.T) {
	t.Setenv("TASKSPEC_PARALLELISM", "many")

	_, err := config.LoadSettings()
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read settings from environment")
}
