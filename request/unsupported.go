package request

import (
	"context"

	"github.com/prilive-com/mockcord/discord"
)

// Endpoints the fake transport deliberately does not implement. Each one
// still goes through the guard so the call is recorded and detached facades
// fail with ErrNotConfigured, then returns a self-describing
// UnsupportedError carrying the operation name.

func (f *Facade) unsupported(op string, args map[string]any) error {
	if err := f.guard(op, args); err != nil {
		return err
	}
	return &discord.UnsupportedError{Op: op}
}

// BulkDeleteMessages is not supported.
func (f *Facade) BulkDeleteMessages(ctx context.Context, channelID discord.Snowflake, messageIDs []discord.Snowflake) error {
	return f.unsupported("bulk_delete_messages", map[string]any{"channel_id": channelID, "count": len(messageIDs)})
}

// GetReactionUsers is not supported; the fake keeps aggregated reaction
// buckets, not per-user reaction lists.
func (f *Facade) GetReactionUsers(ctx context.Context, channelID, messageID discord.Snowflake, emoji string) ([]*discord.User, error) {
	return nil, f.unsupported("get_reaction_users", map[string]any{"channel_id": channelID, "message_id": messageID, "emoji": emoji})
}

// CreateInvite is not supported.
func (f *Facade) CreateInvite(ctx context.Context, channelID discord.Snowflake) error {
	return f.unsupported("create_invite", map[string]any{"channel_id": channelID})
}

// GetChannelInvites is not supported.
func (f *Facade) GetChannelInvites(ctx context.Context, channelID discord.Snowflake) error {
	return f.unsupported("get_channel_invites", map[string]any{"channel_id": channelID})
}

// GetGuildInvites is not supported.
func (f *Facade) GetGuildInvites(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_guild_invites", map[string]any{"guild_id": guildID})
}

// DeleteInvite is not supported.
func (f *Facade) DeleteInvite(ctx context.Context, code string) error {
	return f.unsupported("delete_invite", map[string]any{"code": code})
}

// CreateWebhook is not supported.
func (f *Facade) CreateWebhook(ctx context.Context, channelID discord.Snowflake, name string) error {
	return f.unsupported("create_webhook", map[string]any{"channel_id": channelID, "name": name})
}

// GetChannelWebhooks is not supported.
func (f *Facade) GetChannelWebhooks(ctx context.Context, channelID discord.Snowflake) error {
	return f.unsupported("get_channel_webhooks", map[string]any{"channel_id": channelID})
}

// GetGuildWebhooks is not supported.
func (f *Facade) GetGuildWebhooks(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_guild_webhooks", map[string]any{"guild_id": guildID})
}

// StartThread is not supported.
func (f *Facade) StartThread(ctx context.Context, channelID, messageID discord.Snowflake, name string) error {
	return f.unsupported("start_thread", map[string]any{"channel_id": channelID, "message_id": messageID, "name": name})
}

// GetStickers is not supported.
func (f *Facade) GetStickers(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_stickers", map[string]any{"guild_id": guildID})
}

// CreateGuildEmoji is not supported.
func (f *Facade) CreateGuildEmoji(ctx context.Context, guildID discord.Snowflake, name string) error {
	return f.unsupported("create_guild_emoji", map[string]any{"guild_id": guildID, "name": name})
}

// GetGuildEmojis is not supported.
func (f *Facade) GetGuildEmojis(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_guild_emojis", map[string]any{"guild_id": guildID})
}

// GetGuildIntegrations is not supported.
func (f *Facade) GetGuildIntegrations(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_guild_integrations", map[string]any{"guild_id": guildID})
}

// GetAuditLogs is not supported.
func (f *Facade) GetAuditLogs(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_audit_logs", map[string]any{"guild_id": guildID})
}

// GetGuildTemplates is not supported.
func (f *Facade) GetGuildTemplates(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_guild_templates", map[string]any{"guild_id": guildID})
}

// GetWidget is not supported.
func (f *Facade) GetWidget(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_widget", map[string]any{"guild_id": guildID})
}

// GetBans is not supported; the fake keeps no ban list.
func (f *Facade) GetBans(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_bans", map[string]any{"guild_id": guildID})
}

// CreateGuild is not supported; guilds are seeded through the backend.
func (f *Facade) CreateGuild(ctx context.Context, name string) error {
	return f.unsupported("create_guild", map[string]any{"name": name})
}

// EditGuild is not supported.
func (f *Facade) EditGuild(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("edit_guild", map[string]any{"guild_id": guildID})
}

// DeleteGuild is not supported.
func (f *Facade) DeleteGuild(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("delete_guild", map[string]any{"guild_id": guildID})
}

// LeaveGuild is not supported.
func (f *Facade) LeaveGuild(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("leave_guild", map[string]any{"guild_id": guildID})
}

// PruneMembers is not supported.
func (f *Facade) PruneMembers(ctx context.Context, guildID discord.Snowflake, days int) error {
	return f.unsupported("prune_members", map[string]any{"guild_id": guildID, "days": days})
}

// GetVanityURL is not supported.
func (f *Facade) GetVanityURL(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_vanity_url", map[string]any{"guild_id": guildID})
}

// GetScheduledEvents is not supported.
func (f *Facade) GetScheduledEvents(ctx context.Context, guildID discord.Snowflake) error {
	return f.unsupported("get_scheduled_events", map[string]any{"guild_id": guildID})
}

// EditVoiceState is not supported.
func (f *Facade) EditVoiceState(ctx context.Context, guildID, channelID discord.Snowflake) error {
	return f.unsupported("edit_voice_state", map[string]any{"guild_id": guildID, "channel_id": channelID})
}

// CreateApplicationCommand is not supported.
func (f *Facade) CreateApplicationCommand(ctx context.Context, name string) error {
	return f.unsupported("create_application_command", map[string]any{"name": name})
}
