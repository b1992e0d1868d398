package request

import (
	"context"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
)

type createRoleParams struct {
	Name string `validate:"required,min=1,max=100"`
}

// CreateRole adds a role to a guild.
func (f *Facade) CreateRole(ctx context.Context, guildID discord.Snowflake, name string, opts ...backend.RoleOption) (*discord.Role, error) {
	if err := f.guard("create_role", map[string]any{"guild_id": guildID, "name": name}); err != nil {
		return nil, err
	}
	if err := f.validate.Struct(&createRoleParams{Name: name}); err != nil {
		return nil, discord.NewValidationError("name", err.Error())
	}
	g, err := f.guild("create_role", guildID)
	if err != nil {
		return nil, err
	}
	return f.backend.MakeRole(g, name, opts...)
}

// EditRole applies a partial update to a guild role.
func (f *Facade) EditRole(ctx context.Context, guildID, roleID discord.Snowflake, upd backend.RoleUpdate) (*discord.Role, error) {
	if err := f.guard("edit_role", map[string]any{"guild_id": guildID, "role_id": roleID}); err != nil {
		return nil, err
	}
	role, err := f.role("edit_role", guildID, roleID)
	if err != nil {
		return nil, err
	}
	return f.backend.UpdateRole(role, upd)
}

// DeleteRole removes a role from a guild. The implicit everyone role cannot
// be deleted.
func (f *Facade) DeleteRole(ctx context.Context, guildID, roleID discord.Snowflake) error {
	if err := f.guard("delete_role", map[string]any{"guild_id": guildID, "role_id": roleID}); err != nil {
		return err
	}
	if roleID == guildID {
		return discord.NewValidationError("role_id", "the everyone role cannot be deleted")
	}
	role, err := f.role("delete_role", guildID, roleID)
	if err != nil {
		return err
	}
	return f.backend.DeleteRole(role)
}

// RolePosition pairs a role id with its requested list position.
type RolePosition struct {
	ID       discord.Snowflake
	Position int
}

// MoveRolePositions reorders guild roles. The everyone role is fixed at
// position 0 and cannot be moved.
func (f *Facade) MoveRolePositions(ctx context.Context, guildID discord.Snowflake, positions []RolePosition) ([]*discord.Role, error) {
	if err := f.guard("move_role_positions", map[string]any{"guild_id": guildID, "count": len(positions)}); err != nil {
		return nil, err
	}
	if _, err := f.guild("move_role_positions", guildID); err != nil {
		return nil, err
	}
	for _, p := range positions {
		if p.ID == guildID {
			return nil, discord.NewValidationError("role_id", "the everyone role cannot be moved")
		}
		if p.Position < 1 {
			return nil, discord.NewValidationError("position", "positions start at 1, above the everyone role")
		}
		if _, err := f.role("move_role_positions", guildID, p.ID); err != nil {
			return nil, err
		}
	}
	out := make([]*discord.Role, 0, len(positions))
	for _, p := range positions {
		role, err := f.role("move_role_positions", guildID, p.ID)
		if err != nil {
			return nil, err
		}
		updated, err := f.backend.UpdateRole(role, backend.RoleUpdate{Position: discord.Some(p.Position)})
		if err != nil {
			return nil, err
		}
		out = append(out, updated)
	}
	return out, nil
}

// role resolves a guild role with 404-shaped errors.
func (f *Facade) role(op string, guildID, roleID discord.Snowflake) (*discord.Role, error) {
	role, err := f.state.Role(guildID, roleID)
	if err != nil {
		return nil, discord.NewNotFound(op, "unknown role", discord.ErrUnknownRole)
	}
	return role, nil
}
