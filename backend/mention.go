package backend

import (
	"regexp"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// Mention scanning over raw message content. The patterns accept the wire
// mention syntax with 17 to 21 digit ids; anything else in the content is
// plain text.
var (
	userMentionRe    = regexp.MustCompile(`<@!?([0-9]{17,21})>`)
	roleMentionRe    = regexp.MustCompile(`<@&([0-9]{17,21})>`)
	channelMentionRe = regexp.MustCompile(`<#([0-9]{17,21})>`)
)

func scanMentions(re *regexp.Regexp, content string) []discord.Snowflake {
	var ids []discord.Snowflake
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		id, err := discord.ParseSnowflake(m[1])
		if err != nil {
			continue
		}
		if !lo.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// FindUserMentions resolves user mentions in content against the guild's
// member list. Mentions of ids that are not members resolve to nothing; a
// nil guild yields an empty list.
func (b *Backend) FindUserMentions(content string, guild *discord.Guild) []*discord.Member {
	out := []*discord.Member{}
	if guild == nil {
		return out
	}
	for _, id := range scanMentions(userMentionRe, content) {
		if m, ok := lo.Find(guild.Members, func(m *discord.Member) bool { return m.User.ID == id }); ok {
			out = append(out, m)
		}
	}
	return out
}

// FindRoleMentions resolves role mentions in content against the guild's
// role list, keeping only ids of roles that exist.
func (b *Backend) FindRoleMentions(content string, guild *discord.Guild) []discord.Snowflake {
	out := []discord.Snowflake{}
	if guild == nil {
		return out
	}
	for _, id := range scanMentions(roleMentionRe, content) {
		if _, ok := lo.Find(guild.Roles, func(r *discord.Role) bool { return r.ID == id }); ok {
			out = append(out, id)
		}
	}
	return out
}

// FindChannelMentions resolves channel mentions in content against the
// guild's channel list, keeping only channels that exist.
func (b *Backend) FindChannelMentions(content string, guild *discord.Guild) []*discord.Channel {
	out := []*discord.Channel{}
	if guild == nil {
		return out
	}
	for _, id := range scanMentions(channelMentionRe, content) {
		if ch, ok := lo.Find(guild.Channels, func(c *discord.Channel) bool { return c.ID == id }); ok {
			out = append(out, ch)
		}
	}
	return out
}
