// Package relay implements the durable request/result relay protocol.
//
// # Overview
//
// Inbound chat messages become request records appended to the request
// stream. An external worker consumes requests, performs the task, and
// appends a result record to the result stream. The relay's consumer
// loop blocks on the result stream, delivers each result back to the
// originating channel as a reply, and then deletes both the request and
// the result record.
//
// # Delivery semantics
//
// Delivery is at-least-once. The consumer cursor is process-local and
// starts at the beginning-of-stream sentinel, so a restart re-reads any
// results that were not yet cleaned up; cleanup after delivery is what
// bounds redelivery. Cleanup failure is logged and never retried. A
// result missing any correlation field (channelId, messageId,
// requestId) is skipped silently and left in the stream.
//
// The package depends on chat-platform behavior only through the
// Messenger and Channel interfaces; the Discord implementation lives in
// the discord package.
package relay
