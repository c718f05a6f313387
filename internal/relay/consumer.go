package relay

import (
	"context"
	"time"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	"github.com/evanxd/discord-agent-trigger/pkg/id"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// consumerState is the consumer loop's explicit state.
type consumerState int

const (
	stateReading consumerState = iota
	stateBackoff
)

// Consumer reads result records from the result stream in arrival order.
//
// The loop is a two-state machine: reading issues a blocking read at the
// current cursor; a transient read failure moves to backoff, which waits
// a fixed delay and returns to reading with the cursor unchanged. A read
// timeout is not a failure and re-reads immediately. The cursor is
// process-local and starts at the beginning-of-stream sentinel, so a
// restarted process re-reads undeleted results.
//
// One Consumer per deployment: concurrent consumers would race on the
// same cursor space with no coordination.
type Consumer struct {
	store  stream.Store
	cfg    config.StreamsConfig
	logger logpkg.Logger
}

// NewConsumer creates a Consumer for the configured result stream.
func NewConsumer(store stream.Store, cfg config.StreamsConfig, logger logpkg.Logger) *Consumer {
	return &Consumer{
		store:  store,
		cfg:    cfg,
		logger: logger.With(logpkg.Component("consumer")),
	}
}

// Consume starts the loop and returns its output channel. Results arrive
// in stream order, one at a time; the next read is not issued until the
// receiver has taken the previous result. The channel is closed when ctx
// is cancelled; the loop never terminates on its own.
func (c *Consumer) Consume(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go c.run(ctx, out)
	return out
}

func (c *Consumer) run(ctx context.Context, out chan<- Result) {
	defer close(out)

	cursor := id.Begin
	state := stateReading
	for ctx.Err() == nil {
		switch state {
		case stateReading:
			entries, err := c.store.BlockingRead(ctx, c.cfg.Results, cursor, c.cfg.ReadBlock(), int64(c.cfg.ReadCount))
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("result stream read failed",
					logpkg.Str("cursor", cursor), logpkg.Err(err))
				state = stateBackoff
				continue
			}
			for _, e := range entries {
				select {
				case out <- resultFromEntry(e):
				case <-ctx.Done():
					return
				}
				// advance only after the result was handed off, so an
				// abandoned loop does not skip the in-flight record
				cursor = e.ID
			}
		case stateBackoff:
			if !sleep(ctx, c.cfg.RetryBackoff()) {
				return
			}
			state = stateReading
		}
	}
}

// sleep waits for d or context cancellation; reports false on cancel.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
