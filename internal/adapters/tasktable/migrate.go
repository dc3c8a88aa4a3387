package tasktable

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5 scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.trai.ch/zerr"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureSchema applies all pending migrations to the database at url.
func EnsureSchema(url string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return zerr.Wrap(err, "failed to open embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(url))
	if err != nil {
		return zerr.Wrap(err, "failed to initialise migrations")
	}
	defer m.Close() //nolint:errcheck // close errors are not actionable here

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return zerr.Wrap(err, "failed to apply migrations")
	}
	return nil
}

// migrateURL rewrites a postgres URL to the scheme of the pgx v5 migrate driver.
func migrateURL(url string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return url
}
