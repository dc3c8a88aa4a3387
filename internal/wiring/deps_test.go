package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskspec/internal/app"
	_ "go.trai.ch/taskspec/internal/wiring"
)

// TestGraftDependencies is skipped: graft.AssertDepsValid infers dependency ids
// from the package of the type passed to Dep[T], so every ports.* lookup is
// reported as a dependency on "ports".
func TestGraftDependencies(t *testing.T) {
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestExecuteForComponents(t *testing.T) {
	for _, key := range []string{"TASKSPEC_DATABASE_URL", "TASKSPEC_REDIS_ADDR", "TASKSPEC_PARALLELISM"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("TASKSPEC_STATE_PATH", filepath.Join(t.TempDir(), "instances.json"))
	t.Setenv("TASKSPEC_LOG_LEVEL", "error")

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
}
