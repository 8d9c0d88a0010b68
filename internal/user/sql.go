// internal/user/sql.go
//
// sqlx-backed user store.
//
// Context
// -------
// The `users` table lives in the backend database (MySQL, MariaDB, or
// SQLite for local runs):
//
//	users (id PK, name, email UNIQUE, role, created_at)
//
// List() reads every row ordered by id.  When the table is empty it
// inserts SeedCount mock users inside one transaction and reads again.
//
// Notes
// -----
// • Queries use `?` placeholders, valid for both supported drivers.
// • Oxford commas, two spaces after periods.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/console/internal/metrics"
)

// Schema creates the users table.  Portable across MySQL and SQLite.
const Schema = `CREATE TABLE IF NOT EXISTS users (
    id         BIGINT       NOT NULL PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    email      VARCHAR(255) NOT NULL UNIQUE,
    role       VARCHAR(16)  NOT NULL DEFAULT 'User',
    created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const (
	listQuery   = `SELECT id, name, email, role, created_at FROM users ORDER BY id`
	insertQuery = `INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`
)

// SQLStore reads users from a SQL database.
type SQLStore struct {
	db  *sqlx.DB
	sfg singleflight.Group
	now func() time.Time
}

// NewSQLStore wraps db.  The caller owns db and must Close it.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Mode names the backend for the API banner.
func (s *SQLStore) Mode() string { return "SQL database (" + s.db.DriverName() + ")" }

// Migrate applies Schema.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// List returns every user ordered by id, seeding the table when empty.
func (s *SQLStore) List(ctx context.Context) ([]Record, error) {
	users, err := s.list(ctx)
	if err != nil || len(users) > 0 {
		return users, err
	}

	v, err, _ := s.sfg.Do("seed", func() (any, error) {
		// Another caller may have seeded while we waited.
		if users, err := s.list(ctx); err != nil || len(users) > 0 {
			return users, err
		}
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
		return s.list(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Record), nil
}

func (s *SQLStore) list(ctx context.Context) ([]Record, error) {
	var users []Record
	if err := s.db.SelectContext(ctx, &users, listQuery); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// seed inserts the mock users in one transaction.  The SQL path keeps
// every creation date at now, matching the column default.
func (s *SQLStore) seed(ctx context.Context) error {
	zap.S().Infow("populating database with mock users", "count", SeedCount)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range mockUsers(SeedCount, s.now(), nil) {
		if _, err := tx.ExecContext(ctx, insertQuery,
			u.ID, u.Name, u.Email, string(u.Role), u.CreatedAt); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	metrics.UserStoreSeedTotal.WithLabelValues(s.db.DriverName()).Inc()
	return nil
}
