package relay

import (
	"context"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
	"github.com/evanxd/discord-agent-trigger/pkg/result"
)

// Relay drives the result side of the protocol: consume, deliver, clean
// up. Iterations are strictly sequential, so delivery order follows
// stream order and throughput is bounded by delivery+cleanup latency.
type Relay struct {
	consumer  *Consumer
	cleaner   *Cleaner
	messenger Messenger
	logger    logpkg.Logger
}

// New wires a Relay over the given store and messenger.
func New(store stream.Store, cfg config.StreamsConfig, messenger Messenger, logger logpkg.Logger) *Relay {
	return &Relay{
		consumer:  NewConsumer(store, cfg, logger),
		cleaner:   NewCleaner(store, cfg, logger),
		messenger: messenger,
		logger:    logger.With(logpkg.Component("relay")),
	}
}

// Run consumes results until ctx is cancelled.
//
// Per result: incomplete records are skipped silently and left in the
// stream. Channel-resolution failure or a non-text destination skips
// that record with a warning; it does not end the loop. Non-empty text
// is delivered as a relaxed reply to the originating message. Cleanup
// runs whether or not text was delivered; a delivery failure is
// best-effort and invisible to the user.
func (r *Relay) Run(ctx context.Context) error {
	for res := range r.consumer.Consume(ctx) {
		if !res.Complete() {
			continue
		}

		resolved := result.Of(r.messenger.ChannelByID(ctx, res.ChannelID))
		if resolved.Err() != nil {
			r.logger.Warn("result channel resolution failed",
				logpkg.Str("channel_id", res.ChannelID),
				logpkg.Str("result_id", res.ID),
				logpkg.Err(resolved.Err()))
			continue
		}
		ch := resolved.Value()
		if ch == nil || !ch.Textable() {
			r.logger.Warn("result channel is not a text channel",
				logpkg.Str("channel_id", res.ChannelID),
				logpkg.Str("result_id", res.ID))
			continue
		}

		if res.Text != "" {
			if err := ch.Reply(ctx, res.Text, res.MessageID); err != nil {
				r.logger.Warn("result delivery failed",
					logpkg.Str("channel_id", res.ChannelID),
					logpkg.Str("message_id", res.MessageID),
					logpkg.Err(err))
			}
		}

		r.cleaner.Cleanup(ctx, res.RequestID, res.ID)
	}
	return ctx.Err()
}
