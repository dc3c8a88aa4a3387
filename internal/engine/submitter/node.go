package submitter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskspec/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskspec/internal/adapters/tasktable" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskspec/internal/adapters/transport" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskspec/internal/core/ports"
)

// NodeID is the unique identifier for the submitter Graft node.
const NodeID graft.ID = "engine.submitter"

func init() {
	graft.Register(graft.Node[*Submitter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
			tasktable.NodeID,
			transport.NodeID,
		},
		Run: func(ctx context.Context) (*Submitter, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			table, err := graft.Dep[ports.TaskTable](ctx)
			if err != nil {
				return nil, err
			}

			publisher, err := graft.Dep[ports.Publisher](ctx)
			if err != nil {
				return nil, err
			}

			return New(table, publisher, log, settings.Parallelism), nil
		},
	})
}
