package request

import (
	"context"
	"fmt"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
)

type createChannelParams struct {
	Name string `validate:"required,min=1,max=100"`
}

// CreateChannel creates a guild channel. The fake transport supports text
// and category channels; other types fail as unsupported.
func (f *Facade) CreateChannel(ctx context.Context, guildID discord.Snowflake, name string, chType discord.ChannelType, opts ...backend.ChannelOption) (*discord.Channel, error) {
	if err := f.guard("create_channel", map[string]any{"guild_id": guildID, "name": name, "type": chType}); err != nil {
		return nil, err
	}
	if err := f.validate.Struct(&createChannelParams{Name: name}); err != nil {
		return nil, discord.NewValidationError("name", err.Error())
	}
	g, err := f.guild("create_channel", guildID)
	if err != nil {
		return nil, err
	}
	switch chType {
	case discord.ChannelTypeGuildText:
		return f.backend.MakeTextChannel(g, name, opts...)
	case discord.ChannelTypeCategory:
		return f.backend.MakeCategoryChannel(g, name, opts...)
	default:
		return nil, &discord.UnsupportedError{Op: fmt.Sprintf("create_channel (type %d)", chType)}
	}
}

// GetChannel fetches a channel by id.
func (f *Facade) GetChannel(ctx context.Context, channelID discord.Snowflake) (*discord.Channel, error) {
	if err := f.guard("get_channel", map[string]any{"channel_id": channelID}); err != nil {
		return nil, err
	}
	return f.channel("get_channel", channelID)
}

// DeleteChannel removes a channel. Deleting a category also deletes the
// channels nested under it, as the real service cascades.
func (f *Facade) DeleteChannel(ctx context.Context, channelID discord.Snowflake) error {
	if err := f.guard("delete_channel", map[string]any{"channel_id": channelID}); err != nil {
		return err
	}
	ch, err := f.channel("delete_channel", channelID)
	if err != nil {
		return err
	}
	if ch.Type == discord.ChannelTypeCategory && !ch.GuildID.IsZero() {
		if g, gerr := f.state.Guild(ch.GuildID); gerr == nil {
			var nested []*discord.Channel
			for _, c := range g.Channels {
				if c.ParentID != nil && *c.ParentID == ch.ID {
					nested = append(nested, c)
				}
			}
			for _, c := range nested {
				if err := f.backend.DeleteChannel(c); err != nil {
					return err
				}
			}
		}
	}
	return f.backend.DeleteChannel(ch)
}

// EditChannelPermissions upserts one permission overwrite on a channel,
// which needs manage_roles.
func (f *Facade) EditChannelPermissions(ctx context.Context, channelID, targetID discord.Snowflake, targetType discord.OverwriteType, allow, deny discord.Permissions) (*discord.Channel, error) {
	if err := f.guard("edit_channel_permissions", map[string]any{"channel_id": channelID, "target_id": targetID}); err != nil {
		return nil, err
	}
	ch, err := f.channel("edit_channel_permissions", channelID)
	if err != nil {
		return nil, err
	}
	if err := f.checkPermission("edit_channel_permissions", ch, discord.PermissionManageRoles, "missing manage_roles"); err != nil {
		return nil, err
	}
	ovr := discord.Some(discord.Overwrite{Allow: allow, Deny: deny})
	return f.backend.UpdateChannelOverwrite(ch, targetID, targetType, ovr)
}

// DeleteChannelPermissions removes the target's permission overwrite from a
// channel, which needs manage_roles.
func (f *Facade) DeleteChannelPermissions(ctx context.Context, channelID, targetID discord.Snowflake, targetType discord.OverwriteType) (*discord.Channel, error) {
	if err := f.guard("delete_channel_permissions", map[string]any{"channel_id": channelID, "target_id": targetID}); err != nil {
		return nil, err
	}
	ch, err := f.channel("delete_channel_permissions", channelID)
	if err != nil {
		return nil, err
	}
	if err := f.checkPermission("delete_channel_permissions", ch, discord.PermissionManageRoles, "missing manage_roles"); err != nil {
		return nil, err
	}
	return f.backend.UpdateChannelOverwrite(ch, targetID, targetType, discord.Null[discord.Overwrite]())
}
