package discord

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/evanxd/discord-agent-trigger/internal/config"
	"github.com/evanxd/discord-agent-trigger/internal/relay"
	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

const submitTimeout = 10 * time.Second

// Sent to the user when their request could not be queued.
const submitFailureReply = "Sorry, there was an error processing your request."

// Session owns the gateway connection and bridges it to the relay:
// inbound eligible messages are submitted as requests, and the Session
// serves as the relay.Messenger for result delivery.
type Session struct {
	dg       *discordgo.Session
	producer *relay.Producer
	logger   logpkg.Logger
	ready    atomic.Bool
}

// NewSession builds the gateway session and registers handlers. The
// connection is not opened until Open is called.
func NewSession(cfg config.DiscordConfig, producer *relay.Producer, logger logpkg.Logger) (*Session, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	s := &Session{
		dg:       dg,
		producer: producer,
		logger:   logger.With(logpkg.Component("discord")),
	}
	dg.AddHandler(s.onReady)
	dg.AddHandler(s.onMessageCreate)
	return s, nil
}

// Open connects to the gateway.
func (s *Session) Open() error {
	if err := s.dg.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (s *Session) Close() error {
	s.ready.Store(false)
	return s.dg.Close()
}

// Ready reports whether the gateway handshake has completed. Used by the
// health endpoint.
func (s *Session) Ready() bool { return s.ready.Load() }

func (s *Session) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	s.ready.Store(true)
	s.logger.Info("gateway ready",
		logpkg.Str("user", r.User.Username),
		logpkg.Int("guilds", len(r.Guilds)))
}

func (s *Session) onMessageCreate(dg *discordgo.Session, m *discordgo.MessageCreate) {
	ch, err := s.channel(m.ChannelID)
	if err != nil {
		s.logger.Warn("channel lookup failed",
			logpkg.Str("channel_id", m.ChannelID), logpkg.Err(err))
		return
	}
	if !eligible(m.Author, m.ID, ch.Type, s.isPublic(ch), s.canView(ch)) {
		return
	}

	msg := relay.Message{
		ID:           m.ID,
		ChannelID:    m.ChannelID,
		Content:      m.Content,
		Sender:       m.Author.Username,
		GroupMembers: s.groupMembers(ch),
		Event:        "messageCreate",
		TextChannel:  ch.Type == discordgo.ChannelTypeGuildText,
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	if err := s.producer.Submit(ctx, msg, ""); err != nil {
		s.logger.Error("request submission failed",
			logpkg.Str("message_id", m.ID),
			logpkg.Str("channel_id", m.ChannelID),
			logpkg.Err(err))
		if _, rerr := dg.ChannelMessageSendReply(m.ChannelID, submitFailureReply, m.Reference()); rerr != nil {
			s.logger.Warn("failure notification failed", logpkg.Err(rerr))
		}
	}
}

// channel resolves a channel from the state cache, falling back to REST.
func (s *Session) channel(channelID string) (*discordgo.Channel, error) {
	if ch, err := s.dg.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return s.dg.Channel(channelID)
}

// isPublic reports whether @everyone can view the channel.
func (s *Session) isPublic(ch *discordgo.Channel) bool {
	guild, err := s.dg.State.Guild(ch.GuildID)
	if err != nil {
		// without guild data assume public, which fails closed
		return true
	}
	var base int64
	for _, role := range guild.Roles {
		if role.ID == ch.GuildID {
			base = role.Permissions
			break
		}
	}
	return everyoneCanView(base, ch.PermissionOverwrites, ch.GuildID)
}

// canView reports whether the bot itself can view the channel.
func (s *Session) canView(ch *discordgo.Channel) bool {
	self := s.dg.State.User
	if self == nil {
		return false
	}
	perms, err := s.dg.State.UserChannelPermissions(self.ID, ch.ID)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionViewChannel != 0
}

// groupMembers lists usernames of guild members who can view the channel.
// Best-effort: members missing from the state cache are omitted.
func (s *Session) groupMembers(ch *discordgo.Channel) []string {
	guild, err := s.dg.State.Guild(ch.GuildID)
	if err != nil {
		return nil
	}
	var names []string
	for _, member := range guild.Members {
		if member.User == nil {
			continue
		}
		perms, err := s.dg.State.UserChannelPermissions(member.User.ID, ch.ID)
		if err != nil || perms&discordgo.PermissionViewChannel == 0 {
			continue
		}
		names = append(names, member.User.Username)
	}
	return names
}

// ChannelByID implements relay.Messenger.
func (s *Session) ChannelByID(_ context.Context, channelID string) (relay.Channel, error) {
	ch, err := s.channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}
	return &replyChannel{dg: s.dg, ch: ch}, nil
}

// replyChannel delivers result text into one Discord channel.
type replyChannel struct {
	dg *discordgo.Session
	ch *discordgo.Channel
}

// Textable reports whether the channel carries text messages.
func (c *replyChannel) Textable() bool {
	return c.ch.Type == discordgo.ChannelTypeGuildText
}

// Reply sends content referencing replyTo. The reference is relaxed: if
// the original message no longer exists, the content is sent without it.
func (c *replyChannel) Reply(_ context.Context, content, replyTo string) error {
	ref := &discordgo.MessageReference{
		MessageID: replyTo,
		ChannelID: c.ch.ID,
		GuildID:   c.ch.GuildID,
	}
	_, err := c.dg.ChannelMessageSendReply(c.ch.ID, content, ref)
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		_, err = c.dg.ChannelMessageSend(c.ch.ID, content)
	}
	return err
}
