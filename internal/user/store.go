// internal/user/store.go
//
// Store contract plus the mock-data generator shared by both backends.
//
// Context
// -------
// The backend has two interchangeable stores:
//
//   - MemoryStore – process-local slice, seeded on first read.
//   - SQLStore    – sqlx-backed `users` table, seeded when empty.
//
// Both seed exactly SeedCount mock users the first time List() finds
// nothing, and both collapse concurrent first reads through singleflight
// so the seed runs once.
package user

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// SeedCount is the number of mock users created on first read.
const SeedCount = 20

// ErrUnknownDriver is returned by NewStore for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown user store driver")

// Store lists every user ordered by ID.
type Store interface {
	List(ctx context.Context) ([]Record, error)
	Mode() string
}

// mockRole reproduces the seeded role distribution: every fifth user is
// an Admin, every third of the rest a Guest, everyone else a User.
func mockRole(i int) Role {
	switch {
	case i%5 == 0:
		return RoleAdmin
	case i%3 == 0:
		return RoleGuest
	default:
		return RoleUser
	}
}

// mockUsers builds n records with creation dates spread over the last
// year.  rnd may be nil, in which case every user is created at now.
func mockUsers(n int, now time.Time, rnd *rand.Rand) []Record {
	const year = 365 * 24 * time.Hour

	out := make([]Record, n)
	for i := range out {
		created := now
		if rnd != nil {
			created = now.Add(-time.Duration(rnd.Int64N(int64(year))))
		}
		out[i] = Record{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("User %d", i+1),
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Role:      mockRole(i),
			CreatedAt: created.UTC().Truncate(time.Millisecond),
		}
	}
	return out
}
