// Package relayrun wires the relay process: configuration, logging,
// the stream store, the Discord gateway, the consumer loop, and the
// health endpoint, with signal-driven graceful shutdown.
package relayrun
