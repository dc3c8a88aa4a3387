package transport

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/adapters/config" //nolint:depguard // Wired in adapter node
	"go.trai.ch/taskspec/internal/adapters/logger" //nolint:depguard // Wired in adapter node
	"go.trai.ch/taskspec/internal/core/ports"
)

// NodeID is the unique identifier for the publisher Graft node.
const NodeID graft.ID = "adapter.publisher"

func init() {
	graft.Register(graft.Node[ports.Publisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Publisher, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			if !settings.UseQueue() {
				log.Warn("no redis address configured, specs will not be published")
				return Noop{}, nil
			}
			return NewAsynqPublisher(settings.RedisAddr, settings.Queue), nil
		},
	})
}
