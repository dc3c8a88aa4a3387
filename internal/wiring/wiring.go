// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/taskspec/internal/adapters/config"
	_ "go.trai.ch/taskspec/internal/adapters/logger"
	_ "go.trai.ch/taskspec/internal/adapters/tasktable"
	_ "go.trai.ch/taskspec/internal/adapters/transport"
	// Register app and engine nodes.
	_ "go.trai.ch/taskspec/internal/app"
	_ "go.trai.ch/taskspec/internal/engine/submitter"
)
