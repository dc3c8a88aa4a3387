package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskspec/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/taskspec/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/taskspec/internal/adapters/tasktable" //nolint:depguard // Wired in app layer
	"go.trai.ch/taskspec/internal/adapters/transport" //nolint:depguard // Wired in app layer
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/taskspec/internal/engine/submitter"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			tasktable.NodeID,
			submitter.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			table, err := graft.Dep[ports.TaskTable](ctx)
			if err != nil {
				return nil, err
			}

			sub, err := graft.Dep[*submitter.Submitter](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, table, sub), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			tasktable.NodeID,
			transport.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
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

	pub, err := graft.Dep[ports.Publisher](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, table, pub), nil
}
