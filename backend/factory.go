package backend

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// Entity factory: pure builders producing canonical wire payloads from
// high-level parameters. No factory function touches backend state; id
// assignment happens in the calling mutation helper.

// wireTime formats a timestamp the way the service does on the wire.
func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewUserData builds a user payload.
func NewUserData(id discord.Snowflake, username, discriminator string, avatar *string) *discord.User {
	return &discord.User{
		ID:            id,
		Username:      username,
		Discriminator: discriminator,
		Avatar:        avatar,
	}
}

// NewRoleData builds a role payload. The legacy and new-format permission
// fields always mirror each other.
func NewRoleData(id discord.Snowflake, name string, perms discord.Permissions, color, position int, hoist, mentionable bool) *discord.Role {
	return &discord.Role{
		ID:             id,
		Name:           name,
		Color:          color,
		Position:       position,
		Permissions:    perms,
		PermissionsNew: perms,
		Hoist:          hoist,
		Mentionable:    mentionable,
	}
}

// NewEveryoneRoleData builds the implicit everyone role for a guild: its id
// equals the guild id and it is the only role at position 0.
func NewEveryoneRoleData(guildID discord.Snowflake) *discord.Role {
	return NewRoleData(guildID, "@everyone", discord.DefaultRolePermissions, 0, 0, false, false)
}

// NewMemberData joins a user with guild-scoped state. The guild's implicit
// everyone role id is never stored in the member's role set.
func NewMemberData(guild *discord.Guild, user *discord.User, nick *string, roles []discord.Snowflake) *discord.Member {
	return &discord.Member{
		User:     user,
		GuildID:  guild.ID,
		Nick:     nick,
		Roles:    stripEveryoneRole(guild.ID, roles),
		JoinedAt: wireTime(time.Now()),
	}
}

func stripEveryoneRole(guildID discord.Snowflake, roles []discord.Snowflake) []discord.Snowflake {
	out := lo.Reject(roles, func(id discord.Snowflake, _ int) bool { return id == guildID })
	if out == nil {
		out = []discord.Snowflake{}
	}
	return out
}

// NewGuildData builds a guild payload.
func NewGuildData(id discord.Snowflake, name string, ownerID discord.Snowflake, roles []*discord.Role, channels []*discord.Channel, members []*discord.Member, memberCount int) *discord.Guild {
	for _, ch := range channels {
		ch.GuildID = id
	}
	for _, r := range roles {
		r.GuildID = id
	}
	for _, m := range members {
		m.GuildID = id
	}
	return &discord.Guild{
		ID:          id,
		Name:        name,
		OwnerID:     ownerID,
		Region:      "us-central",
		MemberCount: memberCount,
		Roles:       roles,
		Channels:    channels,
		Members:     members,
	}
}

// NewTextChannelData builds a guild text channel payload.
func NewTextChannelData(id, guildID discord.Snowflake, name string, position int, overwrites []*discord.Overwrite, parentID *discord.Snowflake) *discord.Channel {
	return &discord.Channel{
		ID:                   id,
		Type:                 discord.ChannelTypeGuildText,
		GuildID:              guildID,
		Name:                 name,
		Position:             position,
		PermissionOverwrites: overwrites,
		ParentID:             parentID,
	}
}

// NewCategoryChannelData builds a category channel payload.
func NewCategoryChannelData(id, guildID discord.Snowflake, name string, position int, overwrites []*discord.Overwrite) *discord.Channel {
	return &discord.Channel{
		ID:                   id,
		Type:                 discord.ChannelTypeCategory,
		GuildID:              guildID,
		Name:                 name,
		Position:             position,
		PermissionOverwrites: overwrites,
	}
}

// NewDMChannelData builds a direct-message channel payload.
func NewDMChannelData(id discord.Snowflake, recipient *discord.User) *discord.Channel {
	return &discord.Channel{
		ID:         id,
		Type:       discord.ChannelTypeDM,
		Recipients: []*discord.User{recipient},
	}
}

// NewMessageData builds a message payload.
func NewMessageData(id discord.Snowflake, channel *discord.Channel, author *discord.User, content string, guildID *discord.Snowflake) *discord.Message {
	return &discord.Message{
		ID:           id,
		ChannelID:    channel.ID,
		GuildID:      guildID,
		Author:       author,
		Content:      content,
		Timestamp:    wireTime(time.Now()),
		Mentions:     []*discord.User{},
		MentionRoles: []discord.Snowflake{},
		Attachments:  []*discord.Attachment{},
		Embeds:       []*discord.Embed{},
	}
}

// NewAttachmentData builds an attachment payload; url doubles as proxy_url,
// both file:// URIs standing in for CDN addresses.
func NewAttachmentData(id discord.Snowflake, filename string, size int64, url string) *discord.Attachment {
	return &discord.Attachment{
		ID:       id,
		Filename: filename,
		Size:     size,
		URL:      url,
		ProxyURL: url,
	}
}

// ParseEmoji turns a reaction emoji argument into its wire identity:
// "id:name" for custom emojis, a bare unicode name otherwise.
func ParseEmoji(emoji string) discord.Emoji {
	if id, name, ok := strings.Cut(emoji, ":"); ok {
		if sid, err := discord.ParseSnowflake(id); err == nil {
			return discord.Emoji{ID: &sid, Name: name}
		}
	}
	return discord.Emoji{Name: emoji}
}
