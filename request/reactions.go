package request

import (
	"context"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// AddReaction reacts to a message as the connected user.
func (f *Facade) AddReaction(ctx context.Context, channelID, messageID discord.Snowflake, emoji string) error {
	if err := f.guard("add_reaction", map[string]any{"channel_id": channelID, "message_id": messageID, "emoji": emoji}); err != nil {
		return err
	}
	msg, err := f.message("add_reaction", channelID, messageID)
	if err != nil {
		return err
	}
	ch, err := f.channel("add_reaction", channelID)
	if err != nil {
		return err
	}
	return f.backend.AddReaction(msg, f.selfActor(ch), emoji)
}

// RemoveOwnReaction removes the connected user's reaction from a message.
func (f *Facade) RemoveOwnReaction(ctx context.Context, channelID, messageID discord.Snowflake, emoji string) error {
	if err := f.guard("remove_own_reaction", map[string]any{"channel_id": channelID, "message_id": messageID, "emoji": emoji}); err != nil {
		return err
	}
	msg, err := f.message("remove_own_reaction", channelID, messageID)
	if err != nil {
		return err
	}
	ch, err := f.channel("remove_own_reaction", channelID)
	if err != nil {
		return err
	}
	return f.backend.RemoveReaction(msg, f.selfActor(ch), emoji)
}

// RemoveUserReaction removes another user's reaction, which needs
// manage_messages in guild channels.
func (f *Facade) RemoveUserReaction(ctx context.Context, channelID, messageID, userID discord.Snowflake, emoji string) error {
	if err := f.guard("remove_user_reaction", map[string]any{"channel_id": channelID, "message_id": messageID, "user_id": userID, "emoji": emoji}); err != nil {
		return err
	}
	msg, err := f.message("remove_user_reaction", channelID, messageID)
	if err != nil {
		return err
	}
	ch, err := f.channel("remove_user_reaction", channelID)
	if err != nil {
		return err
	}
	if err := f.checkPermission("remove_user_reaction", ch, discord.PermissionManageMessages, "missing manage_messages"); err != nil {
		return err
	}
	u, err := f.backend.User(userID)
	if err != nil {
		return discord.NewNotFound("remove_user_reaction", "unknown user", discord.ErrUnknownUser)
	}
	actor := discord.UserActor(u)
	if !ch.GuildID.IsZero() {
		if m, merr := f.state.Member(ch.GuildID, userID); merr == nil {
			actor = discord.MemberActor(m)
		}
	}
	return f.backend.RemoveReaction(msg, actor, emoji)
}

// ClearReactions drops every reaction from a message, which needs
// manage_messages in guild channels.
func (f *Facade) ClearReactions(ctx context.Context, channelID, messageID discord.Snowflake) error {
	if err := f.guard("clear_reactions", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return err
	}
	msg, err := f.message("clear_reactions", channelID, messageID)
	if err != nil {
		return err
	}
	ch, err := f.channel("clear_reactions", channelID)
	if err != nil {
		return err
	}
	if err := f.checkPermission("clear_reactions", ch, discord.PermissionManageMessages, "missing manage_messages"); err != nil {
		return err
	}
	return f.backend.ClearReactions(msg)
}

// Reactions returns the aggregated reaction buckets of a message.
func (f *Facade) Reactions(ctx context.Context, channelID, messageID discord.Snowflake) ([]*discord.Reaction, error) {
	if err := f.guard("get_reactions", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return nil, err
	}
	msg, err := f.message("get_reactions", channelID, messageID)
	if err != nil {
		return nil, err
	}
	return lo.Map(msg.Reactions, func(r *discord.Reaction, _ int) *discord.Reaction {
		cp := *r
		return &cp
	}), nil
}
