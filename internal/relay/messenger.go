package relay

import "context"

// Message is the relay's view of the inbound chat event that may become
// a request. The platform adapter builds it after the eligibility gate.
type Message struct {
	ID           string
	ChannelID    string
	Content      string
	Sender       string
	GroupMembers []string
	Event        string

	// TextChannel records whether the originating channel is
	// text-capable. Submit refuses to produce a request when false.
	TextChannel bool
}

// Channel is a resolved destination for result delivery.
type Channel interface {
	// Textable reports whether the channel can carry text messages.
	Textable() bool

	// Reply sends content as a reply referencing replyTo. The reference
	// is relaxed: delivery must not fail merely because the referenced
	// message was deleted.
	Reply(ctx context.Context, content, replyTo string) error
}

// Messenger resolves destination channels by id.
type Messenger interface {
	ChannelByID(ctx context.Context, channelID string) (Channel, error)
}
