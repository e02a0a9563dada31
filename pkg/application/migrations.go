package application

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

var ErrNoDatabase = errors.New("migrations require a database pool")

// NewMigrationManager applies every registered schema directory with goose. Modules keep
// disjoint version ranges so their files can be merged into one ordered history.
func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []fs.FS
}

func (m *migrationManager) RegisterSchema(schemas ...fs.FS) {
	m.schemas = append(m.schemas, schemas...)
}

func (m *migrationManager) withDB(fn func(db *sql.DB) error) error {
	if m.pool == nil {
		return ErrNoDatabase
	}
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() {
		if err := db.Close(); err != nil {
			m.logger.WithError(err).Warn("failed to close migration connection")
		}
	}()

	goose.SetBaseFS(unionFS(m.schemas))
	goose.SetLogger(m.logger)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn(db)
}

func (m *migrationManager) Run(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		return goose.UpContext(ctx, db, ".", goose.WithAllowMissing())
	})
}

func (m *migrationManager) Rollback(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		return goose.DownContext(ctx, db, ".")
	})
}

func (m *migrationManager) Status(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		return goose.StatusContext(ctx, db, ".")
	})
}

// unionFS overlays flat schema directories. The first filesystem containing a name wins.
type unionFS []fs.FS

func (u unionFS) Open(name string) (fs.File, error) {
	var firstErr error
	for _, fsys := range u {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return nil, firstErr
}

func (u unionFS) Stat(name string) (fs.FileInfo, error) {
	var firstErr error
	for _, fsys := range u {
		info, err := fs.Stat(fsys, name)
		if err == nil {
			return info, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return nil, firstErr
}

func (u unionFS) ReadDir(name string) ([]fs.DirEntry, error) {
	seen := make(map[string]bool)
	var entries []fs.DirEntry
	found := false
	for _, fsys := range u {
		list, err := fs.ReadDir(fsys, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range list {
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true
			entries = append(entries, e)
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}
