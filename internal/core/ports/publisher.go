package ports

import (
	"context"

	"go.trai.ch/taskspec/internal/core/domain"
)

// Publisher hands finished task specs to the transport.
//
//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish sends the raw spec bytes to the scheduler.
	Publish(ctx context.Context, spec *domain.Spec) error
}
