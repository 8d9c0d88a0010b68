package user

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/console/internal/metrics"
)

// MemoryStore keeps users in a process-local slice.  Safe for concurrent
// use.  The zero value is not usable; construct with NewMemoryStore.
type MemoryStore struct {
	mu    sync.RWMutex
	users []Record
	sfg   singleflight.Group

	now func() time.Time
	rnd *rand.Rand
}

// NewMemoryStore returns an empty store that seeds itself on first List.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: time.Now,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
}

// Mode names the backend for the API banner.
func (s *MemoryStore) Mode() string { return "In-memory database" }

// List returns a copy of every user ordered by ID, seeding first if empty.
func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	if out, ok := s.snapshot(); ok {
		return out, nil
	}

	_, err, _ := s.sfg.Do("seed", func() (any, error) {
		// Double-check after the singleflight barrier.
		if _, ok := s.snapshot(); ok {
			return nil, nil
		}
		zap.S().Infow("populating in-memory store with mock users", "count", SeedCount)

		s.mu.Lock()
		s.users = mockUsers(SeedCount, s.now(), s.rnd)
		s.mu.Unlock()

		metrics.UserStoreSeedTotal.WithLabelValues("memory").Inc()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	out, _ := s.snapshot()
	return out, nil
}

func (s *MemoryStore) snapshot() ([]Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.users) == 0 {
		return nil, false
	}
	out := make([]Record, len(s.users))
	copy(out, s.users)
	return out, true
}
