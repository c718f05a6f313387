package stream

import (
	"context"
	"sync"
	"time"

	"github.com/evanxd/discord-agent-trigger/pkg/id"
)

// MemoryStore is an in-memory Store used by tests and dry runs. It keeps
// per-stream append order and supports blocking reads via an append
// notification channel.
type MemoryStore struct {
	mu       sync.Mutex
	streams  map[string][]Entry
	notifyCh chan struct{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams:  make(map[string][]Entry),
		notifyCh: make(chan struct{}),
	}
}

// Append adds an entry and wakes blocked readers.
func (s *MemoryStore) Append(_ context.Context, stream, entryID string, fields map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.streams[stream] = append(s.streams[stream], Entry{ID: entryID, Fields: copied})
	// broadcast to all waiters
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
	return entryID, nil
}

// BlockingRead returns entries after afterID, waiting up to block for an
// append if none are available yet.
func (s *MemoryStore) BlockingRead(ctx context.Context, stream, afterID string, block time.Duration, count int64) ([]Entry, error) {
	deadline := time.NewTimer(block)
	defer deadline.Stop()

	for {
		s.mu.Lock()
		ch := s.notifyCh
		var out []Entry
		for _, e := range s.streams[stream] {
			if id.Compare(e.ID, afterID) > 0 {
				out = append(out, e)
				if int64(len(out)) >= count {
					break
				}
			}
		}
		s.mu.Unlock()
		if len(out) > 0 {
			return out, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, nil
		case <-ch:
		}
	}
}

// Delete removes entries by id and reports how many existed.
func (s *MemoryStore) Delete(_ context.Context, stream string, ids ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, i := range ids {
		want[i] = true
	}
	var kept []Entry
	var deleted int64
	for _, e := range s.streams[stream] {
		if want[e.ID] {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.streams[stream] = kept
	return deleted, nil
}

// Len reports how many entries a stream currently holds.
func (s *MemoryStore) Len(stream string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streams[stream])
}

// Entries returns a snapshot of a stream in append order.
func (s *MemoryStore) Entries(stream string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.streams[stream]))
	copy(out, s.streams[stream])
	return out
}
