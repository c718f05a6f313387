package relay

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// Cleaner deletes a delivered request/result pair from their streams.
type Cleaner struct {
	store  stream.Store
	cfg    config.StreamsConfig
	logger logpkg.Logger
}

// NewCleaner creates a Cleaner over both configured streams.
func NewCleaner(store stream.Store, cfg config.StreamsConfig, logger logpkg.Logger) *Cleaner {
	return &Cleaner{
		store:  store,
		cfg:    cfg,
		logger: logger.With(logpkg.Component("cleanup")),
	}
}

// Cleanup deletes the request record (by requestID) and the result
// record (by resultID) as two concurrent, independent deletes. Deleting
// an already-absent id is a normal outcome. Failure is logged naming
// both ids and never retried; it is not surfaced beyond the log.
func (c *Cleaner) Cleanup(ctx context.Context, requestID, resultID string) {
	// plain group, not WithContext: one failing delete must not cancel
	// the other
	var g errgroup.Group
	g.Go(func() error {
		_, err := c.store.Delete(ctx, c.cfg.Requests, requestID)
		return err
	})
	g.Go(func() error {
		_, err := c.store.Delete(ctx, c.cfg.Results, resultID)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("cleanup failed",
			logpkg.Str("request_id", requestID),
			logpkg.Str("result_id", resultID),
			logpkg.Err(err))
	}
}
