package id

import (
	"testing"
	"time"
)

func TestSameMillisecondIncrementsSequence(t *testing.T) {
	g := NewGenerator()
	NowMs = func() int64 { return 1000 }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	b := g.Next()
	if a != "1000-0" || b != "1000-1" {
		t.Fatalf("expected 1000-0/1000-1, got %s/%s", a, b)
	}
	if Compare(a, b) >= 0 {
		t.Fatalf("expected a<b")
	}
}

func TestClockRegressionGuard(t *testing.T) {
	g := NewGenerator()
	ms := int64(1000)
	NowMs = func() int64 { return ms }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next() // uses 1000
	ms = 900      // clock went backwards
	b := g.Next() // should still be > a
	if Compare(a, b) >= 0 {
		t.Fatalf("expected b>a despite clock regression: a=%s b=%s", a, b)
	}
}

func TestNewMillisecondResetsSequence(t *testing.T) {
	g := NewGenerator()
	ms := int64(2000)
	NowMs = func() int64 { return ms }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	_ = g.Next()
	ms = 2001
	got := g.Next()
	if got != "2001-0" {
		t.Fatalf("expected 2001-0, got %s", got)
	}
}

func TestParse(t *testing.T) {
	ms, seq, err := Parse("1700000000000-7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ms != 1700000000000 || seq != 7 {
		t.Fatalf("unexpected parts: %d %d", ms, seq)
	}
	for _, bad := range []string{"", "123", "-1", "a-b", "12-"} {
		if _, _, err := Parse(bad); err == nil {
			t.Fatalf("expected parse error for %q", bad)
		}
	}
}

func TestCompareAcrossMilliseconds(t *testing.T) {
	if Compare("999-5", "1000-0") >= 0 {
		t.Fatalf("expected earlier ms to sort first")
	}
	if Compare("1000-2", "1000-2") != 0 {
		t.Fatalf("expected equal ids to compare 0")
	}
}
