package relay

import (
	"encoding/json"
	"fmt"

	"github.com/evanxd/discord-agent-trigger/internal/stream"
)

// Stream record field names. All values are strings on the wire; the
// member list is a JSON-encoded string array.
const (
	fieldRequestID    = "requestId"
	fieldEvent        = "event"
	fieldInstruction  = "instruction"
	fieldSender       = "sender"
	fieldGroupMembers = "groupMembers"
	fieldLedgerID     = "ledgerId"
	fieldChannelID    = "channelId"
	fieldMessageID    = "messageId"
	fieldResult       = "result"
)

const ledgerNamespace = "discord:"

// LedgerID derives the logical account key for a channel.
func LedgerID(channelID string) string { return ledgerNamespace + channelID }

// Request is a task description appended to the request stream. Its ID
// doubles as the stream entry id and is carried in the payload so the
// worker can correlate its result.
type Request struct {
	ID           string
	Event        string
	Instruction  string
	Sender       string
	GroupMembers []string
	LedgerID     string
	ChannelID    string
	MessageID    string
}

// Fields encodes the request as flat string fields for appending.
func (r Request) Fields() (map[string]string, error) {
	members, err := json.Marshal(r.GroupMembers)
	if err != nil {
		return nil, fmt.Errorf("encode group members: %w", err)
	}
	return map[string]string{
		fieldRequestID:    r.ID,
		fieldEvent:        r.Event,
		fieldInstruction:  r.Instruction,
		fieldSender:       r.Sender,
		fieldGroupMembers: string(members),
		fieldLedgerID:     r.LedgerID,
		fieldChannelID:    r.ChannelID,
		fieldMessageID:    r.MessageID,
	}, nil
}

// Result is a worker's completed output read from the result stream.
type Result struct {
	ID        string
	Text      string
	ChannelID string
	MessageID string
	RequestID string
}

// resultFromEntry decodes a stream entry into a Result. Unknown fields
// are ignored; missing fields stay empty and fail Complete.
func resultFromEntry(e stream.Entry) Result {
	return Result{
		ID:        e.ID,
		Text:      e.Fields[fieldResult],
		ChannelID: e.Fields[fieldChannelID],
		MessageID: e.Fields[fieldMessageID],
		RequestID: e.Fields[fieldRequestID],
	}
}

// Complete reports whether all correlation fields are present. Incomplete
// results are not actionable: they are neither delivered nor cleaned up.
func (r Result) Complete() bool {
	return r.ChannelID != "" && r.MessageID != "" && r.RequestID != ""
}
