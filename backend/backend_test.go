package backend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/gateway"
	"github.com/prilive-com/mockcord/state"
)

func newTestBackend(t *testing.T) (*Backend, *state.State, *gateway.Gateway) {
	t.Helper()
	self := &discord.User{ID: 100000000000000001, Username: "MockUser", Discriminator: "0001"}
	st := state.New(self)
	gw := gateway.New(st)
	return New(st, gw), st, gw
}

func seedGuildChannel(t *testing.T, b *Backend) (*discord.Guild, *discord.Channel) {
	t.Helper()
	g, err := b.MakeGuild("guild", OwnedBySelf())
	require.NoError(t, err)
	_, err = b.MakeMember(b.State().SelfUser(), g)
	require.NoError(t, err)
	ch, err := b.MakeTextChannel(g, "general")
	require.NoError(t, err)
	return g, ch
}

func TestMakeGuild_Defaults(t *testing.T) {
	b, st, gw := newTestBackend(t)

	g, err := b.MakeGuild("my-guild")
	require.NoError(t, err)
	assert.Equal(t, "my-guild", g.Name)
	assert.Equal(t, 1, g.MemberCount)
	assert.True(t, g.OwnerID.IsZero())

	// The implicit everyone role shares the guild id and sits at position 0.
	require.Len(t, g.Roles, 1)
	everyone := g.Roles[0]
	assert.Equal(t, g.ID, everyone.ID)
	assert.Equal(t, "@everyone", everyone.Name)
	assert.Equal(t, 0, everyone.Position)
	assert.Equal(t, discord.DefaultRolePermissions, everyone.Permissions)

	cached, err := st.Guild(g.ID)
	require.NoError(t, err)
	assert.Same(t, g, cached)

	ev, ok := gw.Next()
	require.True(t, ok)
	assert.Equal(t, discord.EventGuildCreate, ev.Type)
}

func TestMakeGuild_SeededMembersAreRegisteredUsers(t *testing.T) {
	b, st, _ := newTestBackend(t)

	alice := &discord.User{ID: 200000000000000002, Username: "Alice", Discriminator: "0002"}
	g, err := b.MakeGuild("seeded", WithGuildMembers(&discord.Member{User: alice}))
	require.NoError(t, err)

	_, err = st.Member(g.ID, alice.ID)
	require.NoError(t, err)

	u, err := b.User(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)
}

func TestMakeGuild_Owned(t *testing.T) {
	b, st, _ := newTestBackend(t)

	g, err := b.MakeGuild("owned", OwnedBySelf())
	require.NoError(t, err)
	assert.Equal(t, st.SelfUser().ID, g.OwnerID)
}

func TestMakeRole_Defaults(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	role, err := b.MakeRole(g, "mods")
	require.NoError(t, err)
	assert.Equal(t, "mods", role.Name)
	assert.Equal(t, 1, role.Position)
	assert.Equal(t, discord.DefaultRolePermissions, role.Permissions)
	assert.Equal(t, role.Permissions, role.PermissionsNew)
	assert.Equal(t, g.ID, role.GuildID)
	assert.Len(t, g.Roles, 2)
}

func TestUpdateRole_PartialFields(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	role, err := b.MakeRole(g, "mods", WithRoleColor(0xff0000))
	require.NoError(t, err)

	updated, err := b.UpdateRole(role, RoleUpdate{
		Name:        discord.Some("admins"),
		Permissions: discord.Some(discord.PermissionAdministrator),
	})
	require.NoError(t, err)
	assert.Equal(t, "admins", updated.Name)
	assert.Equal(t, discord.PermissionAdministrator, updated.Permissions)
	assert.Equal(t, discord.PermissionAdministrator, updated.PermissionsNew)
	// Unset fields keep their stored values.
	assert.Equal(t, 0xff0000, updated.Color)
}

func TestUpdateRole_NoFieldsIsNoop(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	role, err := b.MakeRole(g, "mods")
	require.NoError(t, err)
	before := *role

	updated, err := b.UpdateRole(role, RoleUpdate{})
	require.NoError(t, err)
	assert.Equal(t, before, *updated)
}

func TestDeleteRole_RemovesFromMembers(t *testing.T) {
	b, st, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	role, err := b.MakeRole(g, "mods")
	require.NoError(t, err)

	u := b.MakeUser("alice", "0002")
	m, err := b.MakeMember(u, g, WithMemberRoles(role.ID))
	require.NoError(t, err)
	require.Contains(t, m.Roles, role.ID)

	require.NoError(t, b.DeleteRole(role))
	_, err = st.Role(g.ID, role.ID)
	assert.True(t, errors.Is(err, discord.ErrUnknownRole))
	assert.NotContains(t, m.Roles, role.ID)
}

func TestMakeTextChannel_PositionAppends(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, ch := seedGuildChannel(t, b)
	assert.Equal(t, 1, ch.Position)

	ch2, err := b.MakeTextChannel(g, "random")
	require.NoError(t, err)
	assert.Equal(t, 2, ch2.Position)
	assert.Equal(t, discord.ChannelTypeGuildText, ch2.Type)
}

func TestMakeCategoryChannel_NestsChildren(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	cat, err := b.MakeCategoryChannel(g, "stuff")
	require.NoError(t, err)
	assert.Equal(t, discord.ChannelTypeCategory, cat.Type)

	child, err := b.MakeTextChannel(g, "nested", WithChannelParent(cat.ID))
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, cat.ID, *child.ParentID)
}

func TestUpdateChannelOverwrite_TriState(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, ch := seedGuildChannel(t, b)

	target := g.ID // everyone role

	// Set an overwrite.
	updated, err := b.UpdateChannelOverwrite(ch, target, discord.OverwriteTypeRole,
		discord.Some(discord.Overwrite{Deny: discord.PermissionSendMessages}))
	require.NoError(t, err)
	require.Len(t, updated.PermissionOverwrites, 1)
	assert.Equal(t, target, updated.PermissionOverwrites[0].ID)
	assert.Equal(t, discord.OverwriteTypeRole, updated.PermissionOverwrites[0].Type)

	// Unset leaves the list untouched.
	updated, err = b.UpdateChannelOverwrite(updated, target, discord.OverwriteTypeRole, discord.Optional[discord.Overwrite]{})
	require.NoError(t, err)
	assert.Len(t, updated.PermissionOverwrites, 1)

	// Null removes the target's entry.
	updated, err = b.UpdateChannelOverwrite(updated, target, discord.OverwriteTypeRole, discord.Null[discord.Overwrite]())
	require.NoError(t, err)
	assert.Empty(t, updated.PermissionOverwrites)
}

func TestDeleteChannel_DropsHistory(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	_, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "hello")
	require.NoError(t, err)

	require.NoError(t, b.DeleteChannel(ch))
	_, err = st.Channel(ch.ID)
	assert.True(t, errors.Is(err, discord.ErrUnknownChannel))
	_, ok := b.History(ch.ID)
	assert.False(t, ok)
}

func TestMakeMember_StripsEveryoneRole(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	role, err := b.MakeRole(g, "mods")
	require.NoError(t, err)

	u := b.MakeUser("alice", "0002")
	m, err := b.MakeMember(u, g, WithMemberRoles(g.ID, role.ID), WithMemberNick("Ally"))
	require.NoError(t, err)
	assert.Equal(t, []discord.Snowflake{role.ID}, m.Roles)
	require.NotNil(t, m.Nick)
	assert.Equal(t, "Ally", *m.Nick)
	assert.Equal(t, "Ally", m.DisplayName())
}

func TestUpdateMember_NickTriState(t *testing.T) {
	b, _, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	u := b.MakeUser("alice", "0002")
	m, err := b.MakeMember(u, g, WithMemberNick("Ally"))
	require.NoError(t, err)

	// Unset keeps the nickname.
	m, err = b.UpdateMember(m, MemberUpdate{})
	require.NoError(t, err)
	require.NotNil(t, m.Nick)

	// Null clears it.
	m, err = b.UpdateMember(m, MemberUpdate{Nick: discord.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, m.Nick)
	assert.Equal(t, "alice", m.DisplayName())

	// Set replaces it.
	m, err = b.UpdateMember(m, MemberUpdate{Nick: discord.Some("Al")})
	require.NoError(t, err)
	require.NotNil(t, m.Nick)
	assert.Equal(t, "Al", *m.Nick)
}

func TestDeleteMember_Removes(t *testing.T) {
	b, st, _ := newTestBackend(t)
	g, _ := seedGuildChannel(t, b)

	u := b.MakeUser("alice", "0002")
	m, err := b.MakeMember(u, g)
	require.NoError(t, err)

	require.NoError(t, b.DeleteMember(m))
	_, err = st.Member(g.ID, u.ID)
	assert.True(t, errors.Is(err, discord.ErrUnknownMember))
}

func TestMakeMessage_ResolvesMentions(t *testing.T) {
	b, st, _ := newTestBackend(t)
	g, ch := seedGuildChannel(t, b)

	u := b.MakeUser("alice", "0002")
	member, err := b.MakeMember(u, g)
	require.NoError(t, err)
	role, err := b.MakeRole(g, "mods")
	require.NoError(t, err)

	content := fmt.Sprintf("hey %s check %s in %s", u.Mention(), role.Mention(), ch.Mention())
	msg, err := b.MakeMessage(ch, discord.MemberActor(member), content)
	require.NoError(t, err)

	require.Len(t, msg.Mentions, 1)
	assert.Equal(t, u.ID, msg.Mentions[0].ID)
	assert.Equal(t, []discord.Snowflake{role.ID}, msg.MentionRoles)
	require.Len(t, msg.MentionChannels, 1)
	assert.Equal(t, ch.ID, msg.MentionChannels[0].ID)

	cached, err := st.Channel(ch.ID)
	require.NoError(t, err)
	require.NotNil(t, cached.LastMessageID)
	assert.Equal(t, msg.ID, *cached.LastMessageID)

	history, ok := b.History(ch.ID)
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.Equal(t, msg.ID, history[0].ID)
}

func TestEditMessage_CommitsAndTimestamps(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	msg, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "before")
	require.NoError(t, err)
	assert.Nil(t, msg.EditedTimestamp)

	edited, err := b.EditMessage(ch.ID, msg.ID, MessageEdit{Content: discord.Some("after")})
	require.NoError(t, err)
	assert.Equal(t, "after", edited.Content)
	assert.NotNil(t, edited.EditedTimestamp)

	// The history mirror carries the same edit.
	history, _ := b.History(ch.ID)
	assert.Equal(t, "after", history[0].Content)
}

func TestDeleteMessage_SplicesHistory(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	self := discord.UserActor(st.SelfUser())
	var ids []discord.Snowflake
	for i := 0; i < 3; i++ {
		m, err := b.MakeMessage(ch, self, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	mid, err := st.Message(ids[1])
	require.NoError(t, err)
	require.NoError(t, b.DeleteMessage(mid))

	history, _ := b.History(ch.ID)
	require.Len(t, history, 2)
	assert.Equal(t, ids[0], history[0].ID)
	assert.Equal(t, ids[2], history[1].ID)

	_, err = st.Message(ids[1])
	assert.True(t, errors.Is(err, discord.ErrUnknownMessage))
}

func TestReactions_AggregateBuckets(t *testing.T) {
	b, st, _ := newTestBackend(t)
	g, ch := seedGuildChannel(t, b)

	u := b.MakeUser("alice", "0002")
	member, err := b.MakeMember(u, g)
	require.NoError(t, err)

	msg, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "react to me")
	require.NoError(t, err)

	require.NoError(t, b.AddReaction(msg, discord.MemberActor(member), "👍"))
	require.NoError(t, b.AddReaction(msg, discord.UserActor(st.SelfUser()), "👍"))

	require.Len(t, msg.Reactions, 1)
	assert.Equal(t, 2, msg.Reactions[0].Count)
	assert.True(t, msg.Reactions[0].Me)

	require.NoError(t, b.RemoveReaction(msg, discord.UserActor(st.SelfUser()), "👍"))
	require.Len(t, msg.Reactions, 1)
	assert.Equal(t, 1, msg.Reactions[0].Count)
	assert.False(t, msg.Reactions[0].Me)

	require.NoError(t, b.RemoveReaction(msg, discord.MemberActor(member), "👍"))
	assert.Empty(t, msg.Reactions)
}

func TestReactions_CustomEmojiIdentity(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	msg, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "custom")
	require.NoError(t, err)

	require.NoError(t, b.AddReaction(msg, discord.UserActor(st.SelfUser()), "123456789012345678:party"))
	require.Len(t, msg.Reactions, 1)
	require.NotNil(t, msg.Reactions[0].Emoji.ID)
	assert.Equal(t, discord.Snowflake(123456789012345678), *msg.Reactions[0].Emoji.ID)
	assert.Equal(t, "party", msg.Reactions[0].Emoji.Name)

	// A unicode emoji with the same name is a different bucket.
	require.NoError(t, b.AddReaction(msg, discord.UserActor(st.SelfUser()), "party"))
	assert.Len(t, msg.Reactions, 2)
}

func TestClearReactions(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	msg, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "clear me")
	require.NoError(t, err)
	require.NoError(t, b.AddReaction(msg, discord.UserActor(st.SelfUser()), "👍"))
	require.NoError(t, b.AddReaction(msg, discord.UserActor(st.SelfUser()), "👎"))

	require.NoError(t, b.ClearReactions(msg))
	assert.Empty(t, msg.Reactions)
}

func TestPinUnpin_UpdatesChannelMarker(t *testing.T) {
	b, st, _ := newTestBackend(t)
	_, ch := seedGuildChannel(t, b)

	msg, err := b.MakeMessage(ch, discord.UserActor(st.SelfUser()), "pin me")
	require.NoError(t, err)

	require.NoError(t, b.PinMessage(ch.ID, msg.ID))
	history, _ := b.History(ch.ID)
	assert.True(t, history[0].Pinned)

	cached, err := st.Channel(ch.ID)
	require.NoError(t, err)
	assert.NotNil(t, cached.LastPinTimestamp)

	require.NoError(t, b.UnpinMessage(ch.ID, msg.ID))
	assert.False(t, history[0].Pinned)
	assert.Nil(t, cached.LastPinTimestamp)
}

func TestMakeDMChannel(t *testing.T) {
	b, _, _ := newTestBackend(t)

	u := b.MakeUser("alice", "0002")
	dm, err := b.MakeDMChannel(u)
	require.NoError(t, err)
	assert.Equal(t, discord.ChannelTypeDM, dm.Type)
	require.Len(t, dm.Recipients, 1)
	assert.Equal(t, u.ID, dm.Recipients[0].ID)
}

func TestStoreUser_PrefersFirstRegistration(t *testing.T) {
	b, _, _ := newTestBackend(t)

	u := b.MakeUser("alice", "0002")
	again := b.MakeUser("bob", "0003", WithUserID(u.ID))
	assert.Same(t, u, again)
}
