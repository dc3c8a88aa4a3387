package tasktable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/zerr"
)

const tableInstances = "task_instances"

// PostgresStore implements ports.TaskTable on a Postgres table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ ports.TaskTable = (*PostgresStore)(nil)

// NewPostgresStore connects to the database at url.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to connect to task table database")
	}
	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// Put upserts the instance record.
func (p *PostgresStore) Put(ctx context.Context, instance *domain.Instance) error {
	vals, args := toInstanceSQLArgs(1, instance)
	qstr := fmt.Sprintf(
		`INSERT INTO %s (instance_id, task_id, state, node_id, record) VALUES %s `+
			`ON CONFLICT (instance_id) DO UPDATE SET task_id=EXCLUDED.task_id, state=EXCLUDED.state, `+
			`node_id=EXCLUDED.node_id, record=EXCLUDED.record;`,
		tableInstances, vals,
	)

	if _, err := p.pool.Exec(ctx, qstr, args...); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store task instance"), "instance_id", instance.ID().String())
	}
	return nil
}

// Get returns the stored instance, or nil if absent.
func (p *PostgresStore) Get(ctx context.Context, id domain.InstanceID) (*domain.Instance, error) {
	qstr := fmt.Sprintf(`SELECT record FROM %s WHERE instance_id=$1;`, tableInstances)

	var record []byte
	err := p.pool.QueryRow(ctx, qstr, id.Bytes()).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read task instance"), "instance_id", id.String())
	}
	return domain.ParseInstance(record)
}

// ApplyUpdate locks the row, applies the update to the record and writes it back.
func (p *PostgresStore) ApplyUpdate(ctx context.Context, id domain.InstanceID, update domain.Update) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := applyUpdateTx(ctx, tx, id, update); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return zerr.Wrap(err, "failed to commit task update")
	}
	return nil
}

func applyUpdateTx(ctx context.Context, tx pgx.Tx, id domain.InstanceID, update domain.Update) error {
	sel := fmt.Sprintf(`SELECT record FROM %s WHERE instance_id=$1 FOR UPDATE;`, tableInstances)

	var record []byte
	err := tx.QueryRow(ctx, sel, id.Bytes()).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return zerr.With(domain.ErrInstanceNotFound, "instance_id", id.String())
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to lock task instance"), "instance_id", id.String())
	}

	in, err := domain.ParseInstance(record)
	if err != nil {
		return zerr.With(err, "instance_id", id.String())
	}
	in.Apply(update)

	set, args := toUpdateSQLArgs(1, in)
	upd := fmt.Sprintf(`UPDATE %s SET %s WHERE instance_id=$%d;`, tableInstances, set, len(args)+1)
	args = append(args, id.Bytes())

	if _, err := tx.Exec(ctx, upd, args...); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to update task instance"), "instance_id", id.String())
	}
	return nil
}

// FindByTask returns the ids of all instances of the task, ordered by id.
func (p *PostgresStore) FindByTask(ctx context.Context, id domain.TaskID) ([]domain.InstanceID, error) {
	qstr := fmt.Sprintf(`SELECT instance_id FROM %s WHERE task_id=$1 ORDER BY instance_id;`, tableInstances)

	rows, err := p.pool.Query(ctx, qstr, id.Bytes())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to query task instances"), "task_id", id.String())
	}
	defer rows.Close()

	var ids []domain.InstanceID
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, zerr.Wrap(err, "failed to scan instance id")
		}
		iid, err := instanceIDFromBytes(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, iid)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read task instances")
	}
	return ids, nil
}

func instanceIDFromBytes(raw []byte) (domain.InstanceID, error) {
	var id domain.InstanceID
	if len(raw) != domain.IDSize {
		return id, zerr.With(domain.ErrInvalidID, "length", len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// toInstanceSQLArgs returns a VALUES tuple with placeholders starting at offset.
func toInstanceSQLArgs(offset int, in *domain.Instance) (string, []any) {
	args := []any{
		in.ID().Bytes(),
		in.Spec().TaskID().Bytes(),
		int64(in.State()),
		in.Node().Bytes(),
		in.Bytes(),
	}
	return "(" + placeholders(offset, len(args)) + ")", args
}

// toUpdateSQLArgs returns the SET clause for the mutable columns of a record.
func toUpdateSQLArgs(offset int, in *domain.Instance) (string, []any) {
	cols := []string{"state", "node_id", "record"}
	args := []any{int64(in.State()), in.Node().Bytes(), in.Bytes()}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s=$%d", col, offset+i)
	}
	return strings.Join(sets, ", "), args
}

func placeholders(offset, n int) string {
	ps := make([]string, n)
	for i := range n {
		ps[i] = fmt.Sprintf("$%d", offset+i)
	}
	return strings.Join(ps, ", ")
}
