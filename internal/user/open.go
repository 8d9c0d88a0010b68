package user

import (
	"context"
	"fmt"
	"io"

	"github.com/yanizio/console/internal/database"
)

// DriverMemory selects MemoryStore.
const DriverMemory = "memory"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store named by driver.  SQL stores are migrated before
// return.  The returned Closer releases the connection pool.
func Open(ctx context.Context, driver, dsn string) (Store, io.Closer, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(), nopCloser{}, nil
	case database.DriverMySQL, database.DriverSQLite:
		db, err := database.Open(ctx, driver, dsn)
		if err != nil {
			return nil, nil, err
		}
		s := NewSQLStore(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, db, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
