// Package submitter turns task manifests into stored and published task instances.
package submitter

import (
	"context"
	"strconv"

	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is used when a non-positive parallelism is configured.
const DefaultParallelism = 8

// Submitted describes the outcome for one manifest task.
type Submitted struct {
	Name     string
	Spec     *domain.Spec
	Instance domain.InstanceID
	// Existing is set when the task was already in the table and nothing new was stored.
	Existing bool
	// Republished is set when an existing instance was still Waiting and its
	// spec was handed to the transport again.
	Republished bool
}

// Submitter builds specs and hands new instances to the task table and transport.
type Submitter struct {
	table       ports.TaskTable
	publisher   ports.Publisher
	logger      ports.Logger
	parallelism int
}

// New creates a Submitter.
func New(table ports.TaskTable, publisher ports.Publisher, logger ports.Logger, parallelism int) *Submitter {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Submitter{
		table:       table,
		publisher:   publisher,
		logger:      logger,
		parallelism: parallelism,
	}
}

// Build builds one spec per manifest task, in order. Task i gets parent counter
// m.Counter+i and references resolve to return ids of earlier tasks.
func Build(m *domain.Manifest) ([]*domain.Spec, error) {
	specs := make([]*domain.Spec, 0, len(m.Tasks))
	byName := make(map[string]*domain.Spec, len(m.Tasks))

	for i := range m.Tasks {
		def := &m.Tasks[i]
		if _, dup := byName[def.Name]; dup {
			return nil, zerr.With(domain.ErrDuplicateTaskName, "task_name", def.Name)
		}
		spec, err := buildTask(m.Parent, m.Counter+int64(i), def, byName)
		if err != nil {
			return nil, zerr.With(err, "task_name", def.Name)
		}
		byName[def.Name] = spec
		specs = append(specs, spec)
	}
	return specs, nil
}

func buildTask(
	parent domain.TaskID,
	counter int64,
	def *domain.TaskDef,
	byName map[string]*domain.Spec,
) (*domain.Spec, error) {
	b, err := domain.NewBuilder(
		parent,
		counter,
		domain.FunctionIDFromName(def.Function),
		int64(len(def.Args)),
		def.Returns,
		def.ValueSize(),
	)
	if err != nil {
		return nil, err
	}

	for i, arg := range def.Args {
		switch arg.Kind {
		case domain.ArgByVal:
			_, err = b.AddValue(arg.Value)
		case domain.ArgByRef:
			id := arg.Object
			if arg.Ref != nil {
				id, err = resolveRef(arg.Ref, byName)
				if err != nil {
					return nil, zerr.With(err, "arg_index", i)
				}
			}
			_, err = b.AddRef(id)
		default:
			err = zerr.With(domain.ErrInvalidArg, "kind", arg.Kind.String())
		}
		if err != nil {
			return nil, zerr.With(err, "arg_index", i)
		}
	}

	return b.Finish()
}

func resolveRef(ref *domain.ReturnRef, byName map[string]*domain.Spec) (domain.ObjectID, error) {
	spec, ok := byName[ref.Task]
	if !ok {
		return domain.ObjectID{}, zerr.With(domain.ErrUnknownTaskRef, "ref", ref.Task)
	}
	id, err := spec.Return(ref.Index)
	if err != nil {
		return domain.ObjectID{}, zerr.With(zerr.With(domain.ErrUnknownTaskRef, "ref", ref.Task), "index", ref.Index)
	}
	return id, nil
}

// Submit builds the manifest, skips tasks the table already holds, and stores
// and publishes a Waiting instance for every new task. An existing instance
// that is still Waiting is published again, since an earlier publish may have
// failed after the instance was stored.
func (s *Submitter) Submit(ctx context.Context, m *domain.Manifest) ([]Submitted, error) {
	specs, err := Build(m)
	if err != nil {
		return nil, err
	}

	results := make([]Submitted, len(specs))
	var fresh, waiting []*domain.Instance

	for i, spec := range specs {
		results[i] = Submitted{Name: m.Tasks[i].Name, Spec: spec}

		existing, err := s.table.FindByTask(ctx, spec.TaskID())
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			results[i].Instance = existing[0]
			results[i].Existing = true

			stored, err := s.table.Get(ctx, existing[0])
			if err != nil {
				return nil, err
			}
			if stored != nil && stored.State() == domain.Waiting {
				results[i].Republished = true
				waiting = append(waiting, stored)
				s.logger.Info("task " + spec.TaskID().Short() + " still waiting, publishing again")
				continue
			}
			s.logger.Info("task " + spec.TaskID().Short() + " already submitted, skipping")
			continue
		}

		in := domain.NewInstance(domain.NewInstanceID(), spec, domain.Waiting, domain.NodeID{})
		results[i].Instance = in.ID()
		fresh = append(fresh, in)
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for _, in := range fresh {
		g.Go(func() error {
			if err := s.table.Put(groupCtx, in); err != nil {
				return err
			}
			return s.publisher.Publish(groupCtx, in.Spec())
		})
	}
	for _, in := range waiting {
		g.Go(func() error {
			return s.publisher.Publish(groupCtx, in.Spec())
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "failed to submit tasks")
	}

	s.logger.Info("submitted " + strconv.Itoa(len(fresh)) + " of " + strconv.Itoa(len(specs)) +
		" tasks, republished " + strconv.Itoa(len(waiting)))
	return results, nil
}

// Update applies a task update to a stored instance.
func (s *Submitter) Update(ctx context.Context, id domain.InstanceID, update domain.Update) error {
	if err := s.table.ApplyUpdate(ctx, id, update); err != nil {
		return err
	}
	s.logger.Info("instance " + id.Short() + " now " + update.String())
	return nil
}
