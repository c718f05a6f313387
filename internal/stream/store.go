package stream

import (
	"context"
	"time"
)

// Entry is one stream record: a store-ordered id and flat string fields.
type Entry struct {
	ID     string
	Fields map[string]string
}

// Store is the append/read/delete surface of the stream store.
type Store interface {
	// Append adds an entry to stream under id and returns the id the
	// store assigned (equal to id when caller-assigned).
	Append(ctx context.Context, stream, id string, fields map[string]string) (string, error)

	// BlockingRead returns entries with ids after afterID, in append
	// order. If none exist it blocks up to block and returns (nil, nil)
	// on timeout. At most count entries are returned.
	BlockingRead(ctx context.Context, stream, afterID string, block time.Duration, count int64) ([]Entry, error)

	// Delete removes entries by id and returns how many existed.
	// Deleting absent ids is not an error.
	Delete(ctx context.Context, stream string, ids ...string) (int64, error)
}
