package discord

import (
	"github.com/bwmarrin/discordgo"
)

// eligible is the policy gate deciding whether an inbound message may
// become a request. All four conditions must hold:
//   - the event is complete (has an author and a message id)
//   - the author is not a bot account
//   - the channel is a guild text channel
//   - the channel is private: the bot can view it, @everyone cannot
//
// Ineligible messages are dropped with no side effect.
func eligible(author *discordgo.User, messageID string, kind discordgo.ChannelType, publicChannel, botCanView bool) bool {
	if author == nil || messageID == "" {
		return false
	}
	if author.Bot {
		return false
	}
	if kind != discordgo.ChannelTypeGuildText {
		return false
	}
	if publicChannel {
		return false
	}
	return botCanView
}

// everyoneCanView reports whether the @everyone role can view a channel,
// given the role's base permissions and the channel's overwrites. The
// @everyone role shares its id with the guild.
func everyoneCanView(basePerms int64, overwrites []*discordgo.PermissionOverwrite, guildID string) bool {
	perms := basePerms
	for _, ow := range overwrites {
		if ow.Type == discordgo.PermissionOverwriteTypeRole && ow.ID == guildID {
			perms &^= ow.Deny
			perms |= ow.Allow
		}
	}
	return perms&discordgo.PermissionViewChannel != 0
}
