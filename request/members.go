package request

import (
	"context"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
)

// KickMember removes a member from a guild.
func (f *Facade) KickMember(ctx context.Context, guildID, userID discord.Snowflake) error {
	if err := f.guard("kick", map[string]any{"guild_id": guildID, "user_id": userID}); err != nil {
		return err
	}
	m, err := f.member("kick", guildID, userID)
	if err != nil {
		return err
	}
	return f.backend.DeleteMember(m)
}

// BanMember removes a member from a guild. The fake keeps no ban list, so a
// ban behaves like a kick; deleteMessageDays is accepted and ignored.
func (f *Facade) BanMember(ctx context.Context, guildID, userID discord.Snowflake, deleteMessageDays int) error {
	if err := f.guard("ban", map[string]any{"guild_id": guildID, "user_id": userID, "delete_message_days": deleteMessageDays}); err != nil {
		return err
	}
	m, err := f.member("ban", guildID, userID)
	if err != nil {
		return err
	}
	return f.backend.DeleteMember(m)
}

// EditMember applies a partial update to a guild member.
func (f *Facade) EditMember(ctx context.Context, guildID, userID discord.Snowflake, upd backend.MemberUpdate) (*discord.Member, error) {
	if err := f.guard("edit_member", map[string]any{"guild_id": guildID, "user_id": userID}); err != nil {
		return nil, err
	}
	m, err := f.member("edit_member", guildID, userID)
	if err != nil {
		return nil, err
	}
	return f.backend.UpdateMember(m, upd)
}

// ChangeMyNickname sets the connected user's nickname in a guild and
// returns the nickname the server stored.
func (f *Facade) ChangeMyNickname(ctx context.Context, guildID discord.Snowflake, nick string) (string, error) {
	if err := f.guard("change_my_nickname", map[string]any{"guild_id": guildID, "nick": nick}); err != nil {
		return "", err
	}
	m, err := f.member("change_my_nickname", guildID, f.state.SelfUser().ID)
	if err != nil {
		return "", err
	}
	upd := backend.MemberUpdate{Nick: discord.Some(nick)}
	if nick == "" {
		upd.Nick = discord.Null[string]()
	}
	if _, err := f.backend.UpdateMember(m, upd); err != nil {
		return "", err
	}
	return nick, nil
}

// AddRole grants a role to a guild member.
func (f *Facade) AddRole(ctx context.Context, guildID, userID, roleID discord.Snowflake) (*discord.Member, error) {
	if err := f.guard("add_role", map[string]any{"guild_id": guildID, "user_id": userID, "role_id": roleID}); err != nil {
		return nil, err
	}
	m, err := f.member("add_role", guildID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := f.role("add_role", guildID, roleID); err != nil {
		return nil, err
	}
	if lo.Contains(m.Roles, roleID) {
		return m, nil
	}
	roles := append(append([]discord.Snowflake{}, m.Roles...), roleID)
	return f.backend.UpdateMember(m, backend.MemberUpdate{Roles: discord.Some(roles)})
}

// RemoveRole revokes a role from a guild member.
func (f *Facade) RemoveRole(ctx context.Context, guildID, userID, roleID discord.Snowflake) (*discord.Member, error) {
	if err := f.guard("remove_role", map[string]any{"guild_id": guildID, "user_id": userID, "role_id": roleID}); err != nil {
		return nil, err
	}
	m, err := f.member("remove_role", guildID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := f.role("remove_role", guildID, roleID); err != nil {
		return nil, err
	}
	roles := lo.Reject(m.Roles, func(id discord.Snowflake, _ int) bool { return id == roleID })
	return f.backend.UpdateMember(m, backend.MemberUpdate{Roles: discord.Some(roles)})
}

// member resolves a guild member with 404-shaped errors.
func (f *Facade) member(op string, guildID, userID discord.Snowflake) (*discord.Member, error) {
	if _, err := f.guild(op, guildID); err != nil {
		return nil, err
	}
	m, err := f.state.Member(guildID, userID)
	if err != nil {
		return nil, discord.NewNotFound(op, "unknown member", discord.ErrUnknownMember)
	}
	return m, nil
}
