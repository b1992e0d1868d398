package request

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/gateway"
	"github.com/prilive-com/mockcord/state"
)

var ctx = context.Background()

// newTestFacade builds a facade over a guild owned by the connected user,
// with one text channel and the user joined as a member.
func newTestFacade(t *testing.T) (*Facade, *backend.Backend, *discord.Guild, *discord.Channel) {
	t.Helper()
	self := &discord.User{ID: 100000000000000001, Username: "MockUser", Discriminator: "0001"}
	st := state.New(self)
	gw := gateway.New(st)
	b := backend.New(st, gw)

	g, err := b.MakeGuild("guild", backend.OwnedBySelf())
	require.NoError(t, err)
	_, err = b.MakeMember(self, g)
	require.NoError(t, err)
	ch, err := b.MakeTextChannel(g, "general")
	require.NoError(t, err)

	return New(b), b, g, ch
}

// newLockedFacade builds a facade over a guild the connected user does not
// own, where the everyone role grants no permissions at all.
func newLockedFacade(t *testing.T) (*Facade, *backend.Backend, *discord.Guild, *discord.Channel) {
	t.Helper()
	self := &discord.User{ID: 100000000000000001, Username: "MockUser", Discriminator: "0001"}
	st := state.New(self)
	gw := gateway.New(st)
	b := backend.New(st, gw)

	gid := b.NextID()
	everyone := backend.NewRoleData(gid, "@everyone", 0, 0, 0, false, false)
	g, err := b.MakeGuild("locked", backend.WithGuildID(gid), backend.WithGuildRoles(everyone))
	require.NoError(t, err)
	_, err = b.MakeMember(self, g)
	require.NoError(t, err)
	ch, err := b.MakeTextChannel(g, "locked-channel")
	require.NoError(t, err)

	return New(b), b, g, ch
}

func TestFacade_RecordsCallsFIFO(t *testing.T) {
	f, _, _, ch := newTestFacade(t)

	_, err := f.SendMessage(ctx, ch.ID, "one")
	require.NoError(t, err)
	_, err = f.GetChannel(ctx, ch.ID)
	require.NoError(t, err)

	call, ok := f.NextCall()
	require.True(t, ok)
	assert.Equal(t, "send_message", call.Op)
	assert.Equal(t, ch.ID, call.Args["channel_id"])

	call, ok = f.NextCall()
	require.True(t, ok)
	assert.Equal(t, "get_channel", call.Op)

	_, ok = f.NextCall()
	assert.False(t, ok)
}

func TestFacade_CallsAndDrain(t *testing.T) {
	f, _, _, ch := newTestFacade(t)

	_, err := f.SendMessage(ctx, ch.ID, "one")
	require.NoError(t, err)

	snapshot := f.Calls()
	assert.Len(t, snapshot, 1)
	assert.Len(t, f.Calls(), 1, "Calls must not consume the log")

	drained := f.DrainCalls()
	assert.Len(t, drained, 1)
	assert.Empty(t, f.Calls())
}

func TestFacade_FailedCallsAreStillRecorded(t *testing.T) {
	f, _, _, _ := newTestFacade(t)

	_, err := f.GetChannel(ctx, 999)
	require.Error(t, err)

	call, ok := f.NextCall()
	require.True(t, ok)
	assert.Equal(t, "get_channel", call.Op)
}

func TestFacade_CanceledContextStillCompletes(t *testing.T) {
	f, _, _, ch := newTestFacade(t)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	// Calls complete synchronously in process; the context keeps the real
	// client's calling convention but is never consulted.
	msg, err := f.SendMessage(canceled, ch.ID, "still delivered")
	require.NoError(t, err)
	assert.Equal(t, "still delivered", msg.Content)

	_, err = f.GetChannel(canceled, ch.ID)
	assert.NoError(t, err)
}

func TestFacade_ClosedReturnsErrNotConfigured(t *testing.T) {
	f, _, _, ch := newTestFacade(t)
	f.Close()

	_, err := f.SendMessage(ctx, ch.ID, "too late")
	assert.True(t, errors.Is(err, discord.ErrNotConfigured))

	err = f.CreateInvite(ctx, ch.ID)
	assert.True(t, errors.Is(err, discord.ErrNotConfigured))

	assert.Empty(t, f.Calls(), "closed facades record nothing")
}
