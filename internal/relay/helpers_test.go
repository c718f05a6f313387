package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

func testStreamsCfg() config.StreamsConfig {
	return config.StreamsConfig{
		Requests:       "discord:requests",
		Results:        "discord:results",
		ReadBlockMs:    50,
		ReadCount:      10,
		RetryBackoffMs: 20,
	}
}

func testLogger() logpkg.Logger { return logpkg.NewTestLogger() }

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

type sentReply struct {
	content string
	replyTo string
}

type fakeChannel struct {
	mu       sync.Mutex
	textable bool
	replyErr error
	replies  []sentReply
}

func (c *fakeChannel) Textable() bool { return c.textable }

func (c *fakeChannel) Reply(_ context.Context, content, replyTo string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replyErr != nil {
		return c.replyErr
	}
	c.replies = append(c.replies, sentReply{content: content, replyTo: replyTo})
	return nil
}

func (c *fakeChannel) sent() []sentReply {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sentReply, len(c.replies))
	copy(out, c.replies)
	return out
}

type fakeMessenger struct {
	mu       sync.Mutex
	channels map[string]*fakeChannel
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{channels: make(map[string]*fakeChannel)}
}

func (m *fakeMessenger) addChannel(id string, textable bool) *fakeChannel {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := &fakeChannel{textable: textable}
	m.channels[id] = ch
	return ch
}

func (m *fakeMessenger) ChannelByID(_ context.Context, channelID string) (Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel " + channelID)
	}
	return ch, nil
}

// flakyStore fails the first n blocking reads, then delegates.
type flakyStore struct {
	stream.Store
	mu        sync.Mutex
	failures  int
	readCalls int
}

func (s *flakyStore) BlockingRead(ctx context.Context, streamName, afterID string, block time.Duration, count int64) ([]stream.Entry, error) {
	s.mu.Lock()
	s.readCalls++
	if s.failures > 0 {
		s.failures--
		s.mu.Unlock()
		return nil, errors.New("transport reset")
	}
	s.mu.Unlock()
	return s.Store.BlockingRead(ctx, streamName, afterID, block, count)
}

// brokenDeleteStore fails every delete but otherwise delegates.
type brokenDeleteStore struct {
	stream.Store
}

func (s *brokenDeleteStore) Delete(context.Context, string, ...string) (int64, error) {
	return 0, errors.New("delete refused")
}

// appendResult adds a result entry with the given correlation fields.
func appendResult(t *testing.T, s stream.Store, entryID, text, channelID, messageID, requestID string) {
	t.Helper()
	fields := map[string]string{fieldResult: text}
	if channelID != "" {
		fields[fieldChannelID] = channelID
	}
	if messageID != "" {
		fields[fieldMessageID] = messageID
	}
	if requestID != "" {
		fields[fieldRequestID] = requestID
	}
	if _, err := s.Append(context.Background(), "discord:results", entryID, fields); err != nil {
		t.Fatalf("append result: %v", err)
	}
}
