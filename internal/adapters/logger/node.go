package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/adapters/config" //nolint:depguard // Wired in adapter node
	"go.trai.ch/taskspec/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = config.LoggerNodeID

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewWithWriter(os.Stderr, ParseLevel(settings.LogLevel)), nil
		},
	})
}
