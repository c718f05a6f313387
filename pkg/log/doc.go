// Package log provides the relay's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Output goes through a pluggable
// Formatter (text or JSON) and one or more Outputs (console by default).
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	)
//	l = l.With(log.Component("consumer"))
//	l.Info("stream read", log.Str("stream", "discord:results"), log.Int("count", 3))
package log
