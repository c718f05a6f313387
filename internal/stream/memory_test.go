package stream

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreAppendOrderAndCursor(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, entryID := range []string{"1000-0", "1000-1", "1001-0"} {
		if _, err := s.Append(ctx, "st", entryID, map[string]string{"k": entryID}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := s.BlockingRead(ctx, "st", "0", 50*time.Millisecond, 10)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "1000-0" || entries[2].ID != "1001-0" {
		t.Fatalf("unexpected order: %v", entries)
	}

	// cursor excludes already-seen entries
	entries, err = s.BlockingRead(ctx, "st", "1000-1", 50*time.Millisecond, 10)
	if err != nil {
		t.Fatalf("read after cursor: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "1001-0" {
		t.Fatalf("unexpected cursor read: %v", entries)
	}
}

func TestMemoryStoreReadTimeout(t *testing.T) {
	s := NewMemoryStore()
	entries, err := s.BlockingRead(context.Background(), "st", "0", 30*time.Millisecond, 10)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries on timeout, got %v", entries)
	}
}

func TestMemoryStoreBlockingWake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	done := make(chan []Entry, 1)
	go func() {
		entries, _ := s.BlockingRead(ctx, "st", "0", time.Second, 10)
		done <- entries
	}()

	time.Sleep(20 * time.Millisecond)
	if _, err := s.Append(ctx, "st", "1000-0", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	select {
	case entries := <-done:
		if len(entries) != 1 || entries[0].ID != "1000-0" {
			t.Fatalf("unexpected entries: %v", entries)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for blocked reader to wake")
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if _, err := s.Append(ctx, "st", "1000-0", nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	n, err := s.Delete(ctx, "st", "1000-0", "9999-0")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deleted, got %d", n)
	}
	n, err = s.Delete(ctx, "st", "1000-0")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 deleted on repeat, got %d", n)
	}
}

func TestMemoryStoreReadHonorsCount(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		entryID := []string{"1-0", "2-0", "3-0", "4-0", "5-0"}[i]
		if _, err := s.Append(ctx, "st", entryID, nil); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	entries, err := s.BlockingRead(ctx, "st", "0", 10*time.Millisecond, 2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
