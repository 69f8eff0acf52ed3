// FILE: internal/pkg/ratelimit/memory_store.go
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type memoryBucket struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps buckets in process memory. Suitable for a single
// instance; multi-instance deployments use the postgres or redis store so
// all replicas share one counter.
//
// Expired buckets are not reaped on a timer. Instead, once the map exceeds
// maxEntries, each increment has a 1% chance of sweeping out every expired
// bucket, which keeps the hot path cheap and the map bounded in practice.
type MemoryStore struct {
	mu         sync.Mutex
	buckets    map[string]*memoryBucket
	maxEntries int
}

const memoryStoreMaxEntries = 20000

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets:    make(map[string]*memoryBucket),
		maxEntries: memoryStoreMaxEntries,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok || !bucket.resetAt.After(now) {
		bucket = &memoryBucket{resetAt: now.Add(window)}
		s.buckets[key] = bucket
	}
	bucket.count++

	if len(s.buckets) > s.maxEntries && rand.Float64() < 0.01 {
		for k, b := range s.buckets {
			if !b.resetAt.After(now) {
				delete(s.buckets, k)
			}
		}
	}

	return bucket.count, bucket.resetAt, nil
}

// Len reports the number of live buckets. Test hook.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
