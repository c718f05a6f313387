package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	"github.com/evanxd/discord-agent-trigger/pkg/id"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// ErrNotTextChannel is returned by Submit when the originating channel
// cannot carry text. This is a structural guarantee enforced before any
// append, independent of the eligibility policy gate.
var ErrNotTextChannel = errors.New("requests can only be created from text channels")

// Producer appends request records to the request stream. Safe for
// concurrent callers: each submission produces an independent record.
type Producer struct {
	store  stream.Store
	stream string
	ids    *id.Generator
	logger logpkg.Logger
}

// NewProducer creates a Producer for the configured request stream.
func NewProducer(store stream.Store, cfg config.StreamsConfig, logger logpkg.Logger) *Producer {
	return &Producer{
		store:  store,
		stream: cfg.Requests,
		ids:    id.NewGenerator(),
		logger: logger.With(logpkg.Component("producer")),
	}
}

// Submit builds a request record from msg and appends it. The
// instruction defaults to the message content; override replaces it
// (e.g. for a deletion intent). Exactly one append is attempted, with
// no retry: the error is surfaced to the caller, who owns user-facing
// notification.
func (p *Producer) Submit(ctx context.Context, msg Message, override string) error {
	if !msg.TextChannel {
		return ErrNotTextChannel
	}

	instruction := msg.Content
	if override != "" {
		instruction = override
	}
	req := Request{
		ID:           p.ids.Next(),
		Event:        msg.Event,
		Instruction:  instruction,
		Sender:       msg.Sender,
		GroupMembers: msg.GroupMembers,
		LedgerID:     LedgerID(msg.ChannelID),
		ChannelID:    msg.ChannelID,
		MessageID:    msg.ID,
	}
	fields, err := req.Fields()
	if err != nil {
		return err
	}
	if _, err := p.store.Append(ctx, p.stream, req.ID, fields); err != nil {
		return fmt.Errorf("submit request %s: %w", req.ID, err)
	}
	p.logger.Debug("request submitted",
		logpkg.Str("request_id", req.ID),
		logpkg.Str("channel_id", req.ChannelID),
		logpkg.Str("message_id", req.MessageID))
	return nil
}
