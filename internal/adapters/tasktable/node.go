package tasktable

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/adapters/config" //nolint:depguard // Wired in adapter node
	"go.trai.ch/taskspec/internal/adapters/logger" //nolint:depguard // Wired in adapter node
	"go.trai.ch/taskspec/internal/core/ports"
)

// NodeID is the unique identifier for the task table Graft node.
const NodeID graft.ID = "adapter.task_table"

func init() {
	graft.Register(graft.Node[ports.TaskTable]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TaskTable, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Open(ctx, settings, log)
		},
	})
}

// Open returns the Postgres table when a database is configured, else the file table.
func Open(ctx context.Context, settings *config.Settings, log ports.Logger) (ports.TaskTable, error) {
	if !settings.UsePostgres() {
		return NewFileStore(settings.StatePath)
	}

	if err := EnsureSchema(settings.DatabaseURL); err != nil {
		return nil, err
	}
	store, err := NewPostgresStore(ctx, settings.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("using postgres task table")
	return store, nil
}
