// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/taskspec/internal/core/domain"
)

// TaskTable is the durable record of task instances, keyed by instance id.
// Instances are stored as their packed byte form.
//
//go:generate mockgen -source=task_table.go -destination=mocks/mock_task_table.go -package=mocks
type TaskTable interface {
	// Put stores the instance, replacing any record with the same instance id.
	Put(ctx context.Context, instance *domain.Instance) error

	// Get returns the instance with the given id.
	// Returns nil, nil if not found.
	Get(ctx context.Context, id domain.InstanceID) (*domain.Instance, error)

	// ApplyUpdate writes the state and node of an update into a stored instance.
	// Returns domain.ErrInstanceNotFound if the instance does not exist.
	ApplyUpdate(ctx context.Context, id domain.InstanceID, update domain.Update) error

	// FindByTask returns the ids of all stored instances of the given task.
	FindByTask(ctx context.Context, id domain.TaskID) ([]domain.InstanceID, error)
}
