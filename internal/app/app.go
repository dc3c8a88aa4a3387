// Package app implements the application layer for taskspec.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/taskspec/internal/engine/submitter"
	"go.trai.ch/zerr"
)

// SpecFileExt is the extension of raw spec files written by Submit.
const SpecFileExt = ".task"

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	table     ports.TaskTable
	submitter *submitter.Submitter
	out       io.Writer
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, table ports.TaskTable, sub *submitter.Submitter) *App {
	return &App{
		loader:    loader,
		table:     table,
		submitter: sub,
		out:       os.Stdout,
	}
}

// WithOutput redirects command output. Used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// SubmitOptions configures Submit.
type SubmitOptions struct {
	// OutDir, when set, receives one raw spec file per manifest task.
	OutDir string
}

// Submit loads the manifest at path and submits its tasks.
func (a *App) Submit(ctx context.Context, path string, opts SubmitOptions) error {
	m, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	results, err := a.submitter.Submit(ctx, m)
	if err != nil {
		return err
	}

	for _, r := range results {
		status := "submitted"
		switch {
		case r.Republished:
			status = "existing (republished)"
		case r.Existing:
			status = "existing"
		}
		_, _ = fmt.Fprintf(a.out, "%s\ttask=%s\tinstance=%s\t%s\n",
			r.Name, r.Spec.TaskID(), r.Instance, status)

		if opts.OutDir != "" {
			if err := writeSpecFile(opts.OutDir, r.Name, r.Spec); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSpecFile(dir, name string, spec *domain.Spec) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}
	path := filepath.Join(dir, name+SpecFileExt)
	if err := os.WriteFile(path, spec.Bytes(), 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write spec file"), "path", path)
	}
	return nil
}

// Inspect parses a raw spec file, prints it and checks its task id.
func (a *App) Inspect(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read spec file"), "path", path)
	}

	spec, err := domain.ParseSpec(data)
	if err != nil {
		return zerr.With(err, "path", path)
	}

	_, _ = fmt.Fprint(a.out, spec.String())
	if !spec.VerifyID(spec.TaskID()) {
		_, _ = fmt.Fprintln(a.out, "  verified: no")
		return zerr.With(zerr.With(domain.ErrIDMismatch, "stored", spec.TaskID().String()),
			"computed", spec.Recompute().String())
	}
	_, _ = fmt.Fprintln(a.out, "  verified: yes")
	return nil
}

// Show prints the stored instance with the given hex id.
func (a *App) Show(ctx context.Context, id string) error {
	iid, err := domain.ParseID[domain.InstanceID](id)
	if err != nil {
		return err
	}

	in, err := a.table.Get(ctx, iid)
	if err != nil {
		return err
	}
	if in == nil {
		return zerr.With(domain.ErrInstanceNotFound, "instance_id", id)
	}

	_, _ = fmt.Fprint(a.out, in.String())
	return nil
}

// Update applies a state and node change to a stored instance. An empty node
// clears the assignment.
func (a *App) Update(ctx context.Context, id, state, node string) error {
	iid, err := domain.ParseID[domain.InstanceID](id)
	if err != nil {
		return err
	}

	s, err := domain.ParseSchedulingState(state)
	if err != nil {
		return err
	}

	var nid domain.NodeID
	if node != "" {
		nid, err = domain.ParseID[domain.NodeID](node)
		if err != nil {
			return err
		}
	}

	u := domain.NewUpdate(s, nid)
	if err := a.submitter.Update(ctx, iid, u); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s\t%s\n", iid, u)
	return nil
}
