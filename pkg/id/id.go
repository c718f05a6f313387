package id

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Begin is the beginning-of-stream sentinel understood by the store.
const Begin = "0"

// Generator produces monotonically increasing "<ms>-<seq>" ids per process.
type Generator struct {
	mu       sync.Mutex
	lastMs   int64
	sequence uint64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// NowMs returns current time in milliseconds since Unix epoch.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new id. Within one millisecond the sequence increments;
// if the clock goes backwards, the last seen millisecond is reused so ids
// never regress.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}
	if ms == g.lastMs {
		g.sequence++
	} else {
		g.sequence = 0
	}
	g.lastMs = ms
	return fmt.Sprintf("%d-%d", ms, g.sequence)
}

// Parse splits an id into its millisecond and sequence parts.
func Parse(s string) (ms int64, seq uint64, err error) {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || dash == len(s)-1 {
		return 0, 0, fmt.Errorf("malformed id %q", s)
	}
	ms, err = strconv.ParseInt(s[:dash], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed id %q: %w", s, err)
	}
	seq, err = strconv.ParseUint(s[dash+1:], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed id %q: %w", s, err)
	}
	return ms, seq, nil
}

// Compare returns -1, 0, 1 ordering two ids chronologically. Malformed ids
// sort before well-formed ones.
func Compare(a, b string) int {
	ams, aseq, aerr := Parse(a)
	bms, bseq, berr := Parse(b)
	if aerr != nil || berr != nil {
		switch {
		case aerr != nil && berr != nil:
			return strings.Compare(a, b)
		case aerr != nil:
			return -1
		default:
			return 1
		}
	}
	switch {
	case ams < bms:
		return -1
	case ams > bms:
		return 1
	case aseq < bseq:
		return -1
	case aseq > bseq:
		return 1
	default:
		return 0
	}
}
