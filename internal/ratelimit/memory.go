package ratelimit

import (
	"context"
	"sync"
	"time"
)

// defaultSweepEvery is how many Allow calls pass between sweeps of idle keys.
const defaultSweepEvery = 1024

// InMemoryStore keeps sliding windows in process. Windows are not shared
// between replicas; use RedisStore when running more than one.
//
// Keys whose window has fully elapsed are swept periodically, so memory is
// bounded by the keys active within one window plus one sweep interval.
type InMemoryStore struct {
	mu         sync.Mutex
	windows    map[string]*slidingWindow
	now        func() time.Time
	calls      int
	sweepEvery int
}

type slidingWindow struct {
	hits   []time.Time
	window time.Duration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows:    make(map[string]*slidingWindow),
		now:        time.Now,
		sweepEvery: defaultSweepEvery,
	}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.calls++
	if s.calls >= s.sweepEvery {
		s.calls = 0
		s.sweep(now)
	}

	var hits []time.Time
	if w, ok := s.windows[key]; ok {
		hits = prune(w.hits, now.Add(-window))
	}

	res := &Result{Limit: limit}
	if len(hits) < limit {
		hits = append(hits, now)
		res.Allowed = true
		res.Remaining = limit - len(hits)
	}
	if len(hits) > 0 {
		res.ResetAt = hits[0].Add(window)
	} else {
		res.ResetAt = now.Add(window)
	}

	if len(hits) == 0 {
		delete(s.windows, key)
	} else {
		s.windows[key] = &slidingWindow{hits: hits, window: window}
	}
	return res, nil
}

// sweep drops keys whose newest hit has left its window. Caller holds mu.
func (s *InMemoryStore) sweep(now time.Time) {
	for key, w := range s.windows {
		if len(w.hits) == 0 || !w.hits[len(w.hits)-1].After(now.Add(-w.window)) {
			delete(s.windows, key)
		}
	}
}

// prune drops hits at or before cutoff. hits is ordered oldest first.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
