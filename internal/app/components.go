package app

import (
	"errors"
	"io"

	"go.trai.ch/taskspec/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger

	closers []io.Closer
}

// NewComponents bundles the app and logger. Any of the given resources that
// hold connections (io.Closer) are released by Close.
func NewComponents(app *App, log ports.Logger, resources ...any) *Components {
	c := &Components{App: app, Logger: log}
	for _, r := range resources {
		if closer, ok := r.(io.Closer); ok {
			c.closers = append(c.closers, closer)
		}
	}
	return c
}

// Close releases the task table and publisher connections.
func (c *Components) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
