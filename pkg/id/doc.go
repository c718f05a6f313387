// Package id generates stream-entry identifiers.
//
// # Format
//
// Identifiers take the textual form "<ms>-<seq>", where ms is the Unix
// millisecond timestamp and seq is a per-process sequence number within
// that millisecond. This is the same shape the stream store assigns to
// entries, so client-assigned and store-assigned ids sort together.
//
// # Monotonicity
//
// The Generator is monotonic per process:
//   - Two ids generated within the same millisecond differ by sequence
//     ("1700000000000-0", "1700000000000-1", ...).
//   - If the system clock regresses, the generator pins to the last seen
//     millisecond and keeps incrementing the sequence.
//
// Usage
//
//	g := id.NewGenerator()
//	requestID := g.Next() // e.g. "1700000000000-0"
package id
