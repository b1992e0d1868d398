package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
)

func joinUser(t *testing.T, b *backend.Backend, g *discord.Guild, name string) *discord.Member {
	t.Helper()
	u := b.MakeUser(name, "0002")
	m, err := b.MakeMember(u, g)
	require.NoError(t, err)
	return m
}

func TestKickMember(t *testing.T) {
	f, b, g, _ := newTestFacade(t)
	m := joinUser(t, b, g, "alice")

	require.NoError(t, f.KickMember(ctx, g.ID, m.User.ID))

	_, err := f.GetMember(ctx, g.ID, m.User.ID)
	assert.True(t, errors.Is(err, discord.ErrUnknownMember))
}

func TestBanMember_ActsLikeKick(t *testing.T) {
	f, b, g, _ := newTestFacade(t)
	m := joinUser(t, b, g, "alice")

	require.NoError(t, f.BanMember(ctx, g.ID, m.User.ID, 7))

	_, err := f.GetMember(ctx, g.ID, m.User.ID)
	assert.True(t, errors.Is(err, discord.ErrUnknownMember))
}

func TestKickMember_UnknownMember(t *testing.T) {
	f, _, g, _ := newTestFacade(t)

	err := f.KickMember(ctx, g.ID, 999)
	assert.True(t, errors.Is(err, discord.ErrUnknownMember))
}

func TestEditMember_NickAndRoles(t *testing.T) {
	f, b, g, _ := newTestFacade(t)
	m := joinUser(t, b, g, "alice")
	role, err := f.CreateRole(ctx, g.ID, "mods")
	require.NoError(t, err)

	updated, err := f.EditMember(ctx, g.ID, m.User.ID, backend.MemberUpdate{
		Nick:  discord.Some("Ally"),
		Roles: discord.Some([]discord.Snowflake{role.ID}),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Nick)
	assert.Equal(t, "Ally", *updated.Nick)
	assert.Equal(t, []discord.Snowflake{role.ID}, updated.Roles)
}

func TestChangeMyNickname_SetAndClear(t *testing.T) {
	f, _, g, _ := newTestFacade(t)

	nick, err := f.ChangeMyNickname(ctx, g.ID, "Botty")
	require.NoError(t, err)
	assert.Equal(t, "Botty", nick)

	m, err := f.GetMember(ctx, g.ID, f.state.SelfUser().ID)
	require.NoError(t, err)
	require.NotNil(t, m.Nick)
	assert.Equal(t, "Botty", *m.Nick)

	// An empty nickname clears it.
	_, err = f.ChangeMyNickname(ctx, g.ID, "")
	require.NoError(t, err)
	m, err = f.GetMember(ctx, g.ID, f.state.SelfUser().ID)
	require.NoError(t, err)
	assert.Nil(t, m.Nick)
}

func TestAddRemoveRole(t *testing.T) {
	f, b, g, _ := newTestFacade(t)
	m := joinUser(t, b, g, "alice")
	role, err := f.CreateRole(ctx, g.ID, "mods")
	require.NoError(t, err)

	updated, err := f.AddRole(ctx, g.ID, m.User.ID, role.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Roles, role.ID)

	// Adding again is a no-op.
	updated, err = f.AddRole(ctx, g.ID, m.User.ID, role.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Roles, 1)

	updated, err = f.RemoveRole(ctx, g.ID, m.User.ID, role.ID)
	require.NoError(t, err)
	assert.NotContains(t, updated.Roles, role.ID)
}

func TestAddRole_UnknownRole(t *testing.T) {
	f, b, g, _ := newTestFacade(t)
	m := joinUser(t, b, g, "alice")

	_, err := f.AddRole(ctx, g.ID, m.User.ID, 999)
	assert.True(t, errors.Is(err, discord.ErrUnknownRole))
}
