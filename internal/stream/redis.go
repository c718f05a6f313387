package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// RedisStore implements Store over Redis streams (XADD/XREAD/XDEL).
// The underlying client is safe for concurrent callers.
type RedisStore struct {
	client *redis.Client
}

// Connect builds a Redis client from cfg and verifies the connection with
// a ping. A failure here is fatal to startup and returned unretried.
func Connect(ctx context.Context, cfg config.RedisConfig, logger logpkg.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	client.AddHook(&errorObserver{logger: logger.With(logpkg.Component("stream"))})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect stream store at %s: %w", cfg.Addr(), err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ping checks store reachability. Used by the health endpoint.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Append adds one entry via XADD with a caller-assigned id.
func (s *RedisStore) Append(ctx context.Context, stream, id string, fields map[string]string) (string, error) {
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	assigned, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		ID:     id,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", stream, err)
	}
	return assigned, nil
}

// BlockingRead issues XREAD BLOCK on a single stream. A server-side block
// timeout surfaces from go-redis as redis.Nil; that is mapped to an empty
// non-error return per the Store contract.
func (s *RedisStore) BlockingRead(ctx context.Context, stream, afterID string, block time.Duration, count int64) ([]Entry, error) {
	streams, err := s.client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{stream, afterID},
		Count:   count,
		Block:   block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s after %s: %w", stream, afterID, err)
	}
	if len(streams) == 0 {
		return nil, nil
	}
	msgs := streams[0].Messages
	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		fields := make(map[string]string, len(m.Values))
		for k, v := range m.Values {
			if sv, ok := v.(string); ok {
				fields[k] = sv
			} else {
				fields[k] = fmt.Sprint(v)
			}
		}
		entries = append(entries, Entry{ID: m.ID, Fields: fields})
	}
	return entries, nil
}

// Delete removes entries via XDEL. Zero deletions is a normal outcome.
func (s *RedisStore) Delete(ctx context.Context, stream string, ids ...string) (int64, error) {
	n, err := s.client.XDel(ctx, stream, ids...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", stream, err)
	}
	return n, nil
}

// errorObserver logs transport-level failures so connection trouble is
// visible even when the caller swallows a command error. Errors still
// propagate to callers unchanged.
type errorObserver struct {
	logger logpkg.Logger
}

func (o *errorObserver) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			o.logger.Error("stream store dial failed", logpkg.Str("addr", addr), logpkg.Err(err))
		}
		return conn, err
	}
}

func (o *errorObserver) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			o.logger.Warn("stream store command failed",
				logpkg.Str("cmd", cmd.Name()), logpkg.Err(err))
		}
		return err
	}
}

func (o *errorObserver) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			o.logger.Warn("stream store pipeline failed",
				logpkg.Int("cmds", len(cmds)), logpkg.Err(err))
		}
		return err
	}
}
