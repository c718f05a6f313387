package relayrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/discord"
	"github.com/evanxd/discord-agent-trigger/internal/relay"
	httpserver "github.com/evanxd/discord-agent-trigger/internal/server/http"
	"github.com/evanxd/discord-agent-trigger/internal/stream"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// Options configures Run.
type Options struct {
	ConfigPath string
}

// NewLogger builds the process logger from config.
func NewLogger(cfg config.LogConfig) logpkg.Logger {
	level, err := logpkg.ParseLevel(cfg.Level)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.Format == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	return logpkg.NewLogger(logpkg.WithLevel(level), logpkg.WithFormatter(formatter))
}

// Run starts the relay and blocks until ctx is cancelled or a signal
// arrives. A store connection failure is fatal and returned unretried.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	store, err := stream.Connect(sctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	producer := relay.NewProducer(store, cfg.Streams, logger)
	session, err := discord.NewSession(cfg.Discord, producer, logger)
	if err != nil {
		return err
	}
	if err := session.Open(); err != nil {
		return err
	}
	defer session.Close()

	rel := relay.New(store, cfg.Streams, session, logger)
	hsrv := httpserver.New(store, session, logger)

	logger.Info("relay started",
		logpkg.Str("requests", cfg.Streams.Requests),
		logpkg.Str("results", cfg.Streams.Results),
		logpkg.Str("http", cfg.HTTP.Addr))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, cfg.HTTP.Addr); err != nil && sctx.Err() == nil {
			logger.Error("http server failed", logpkg.Err(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = rel.Run(sctx)
	}()

	<-sctx.Done()
	hsrv.Close()
	wg.Wait()
	return nil
}
