package transport

import (
	"context"

	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
)

// Noop is a publisher that drops every spec. It is used when no queue is configured.
type Noop struct{}

var _ ports.Publisher = Noop{}

// Publish does nothing.
func (Noop) Publish(context.Context, *domain.Spec) error { return nil }
