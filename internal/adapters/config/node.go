package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/core/ports"
)

const (
	// SettingsNodeID provides *Settings read from the environment.
	SettingsNodeID graft.ID = "adapter.settings"
	// NodeID provides the manifest loader.
	NodeID graft.ID = "adapter.manifest_loader"
	// LoggerNodeID is the id of the logger node. It lives here because the
	// logger package imports config; logger.NodeID is defined from it.
	LoggerNodeID graft.ID = "adapter.logger"
)

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			return LoadSettings()
		},
	})

	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoggerNodeID},
		Run: func(ctx context.Context) (ports.ManifestLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
