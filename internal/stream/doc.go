// Package stream implements the relay's client for the durable
// append-only stream store (Redis streams).
//
// # Overview
//
// The store holds two streams: one of task requests produced by the
// relay, one of task results produced by an external worker. The client
// surfaces the three primitives the relay protocol needs:
//
//   - Append: add one entry with a caller-assigned id and flat string fields
//   - BlockingRead: read entries after a cursor, blocking up to a window;
//     a timeout is a normal empty return, not an error
//   - Delete: remove entries by id; deleting a missing id is not an error
//
// The Store interface exists so the relay core can be exercised against
// an in-memory fake; RedisStore is the production implementation.
package stream
