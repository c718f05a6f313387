package relay

import (
	"testing"

	"github.com/evanxd/discord-agent-trigger/internal/stream"
)

func TestRequestFieldsEncoding(t *testing.T) {
	req := Request{
		ID:           "1000-0",
		Event:        "messageCreate",
		Instruction:  "log $12 lunch",
		Sender:       "alice",
		GroupMembers: []string{"alice", "bob"},
		LedgerID:     LedgerID("c1"),
		ChannelID:    "c1",
		MessageID:    "m1",
	}
	f, err := req.Fields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if f[fieldGroupMembers] != `["alice","bob"]` {
		t.Fatalf("group members not JSON-encoded: %q", f[fieldGroupMembers])
	}
	if f[fieldLedgerID] != "discord:c1" {
		t.Fatalf("unexpected ledger id: %q", f[fieldLedgerID])
	}
}

func TestRequestFieldsEmptyMembers(t *testing.T) {
	f, err := Request{ID: "1-0"}.Fields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if f[fieldGroupMembers] != "null" && f[fieldGroupMembers] != "[]" {
		t.Fatalf("unexpected empty members encoding: %q", f[fieldGroupMembers])
	}
}

func TestResultComplete(t *testing.T) {
	full := Result{ID: "1-0", ChannelID: "c", MessageID: "m", RequestID: "r"}
	if !full.Complete() {
		t.Fatalf("expected complete")
	}
	cases := []Result{
		{ID: "1-0", MessageID: "m", RequestID: "r"},
		{ID: "1-0", ChannelID: "c", RequestID: "r"},
		{ID: "1-0", ChannelID: "c", MessageID: "m"},
	}
	for i, r := range cases {
		if r.Complete() {
			t.Fatalf("case %d: expected incomplete", i)
		}
	}
}

func TestResultFromEntryIgnoresUnknownFields(t *testing.T) {
	r := resultFromEntry(stream.Entry{
		ID: "2-0",
		Fields: map[string]string{
			fieldResult:    "ok",
			fieldChannelID: "c1",
			fieldMessageID: "m1",
			fieldRequestID: "r1",
			"extra":        "ignored",
		},
	})
	if r.ID != "2-0" || r.Text != "ok" || !r.Complete() {
		t.Fatalf("unexpected decode: %+v", r)
	}
}
