package mockcord

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/request"
)

var ctx = context.Background()

func TestConfigure_NilClientRequiresDummy(t *testing.T) {
	_, err := Configure(nil)
	require.Error(t, err)

	c, err := Configure(nil, WithDummyClient())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "MockUser", c.SelfUser().Username)
	assert.Equal(t, "0001", c.SelfUser().Discriminator)
}

func TestConfigure_DefaultSelfUsersGetDistinctIDs(t *testing.T) {
	a, err := Configure(nil, WithDummyClient())
	require.NoError(t, err)
	b, err := Configure(nil, WithDummyClient())
	require.NoError(t, err)

	// Default self ids come from one shared generator, so two environments
	// built back to back never share an id.
	assert.NotEqual(t, a.SelfUser().ID, b.SelfUser().ID)
}

func TestConfigure_SeedsEnvironment(t *testing.T) {
	c, err := Configure(nil, WithDummyClient(), WithSeedGuilds(2), WithSeedChannels(3), WithSeedMembers(2))
	require.NoError(t, err)

	guilds := c.State().Guilds()
	require.Len(t, guilds, 2)
	for _, g := range guilds {
		assert.Len(t, g.Channels, 3)
		// Connected user plus two seeded members.
		assert.Len(t, g.Members, 3)
		assert.Equal(t, c.SelfUser().ID, g.OwnerID)
	}

	// Seeding traffic is drained; tests start with an empty event log.
	assert.Equal(t, 0, c.Gateway().Len())
	assert.Empty(t, c.Request().Calls())
}

func TestConfigure_InvalidatesPreviousEnvironment(t *testing.T) {
	c, err := Configure(NewClient())
	require.NoError(t, err)

	oldFacade := c.Request()
	oldGateway := c.Gateway()
	ch := c.State().Guilds()[0].Channels[0]

	_, err = Configure(c)
	require.NoError(t, err)

	_, err = oldFacade.SendMessage(ctx, ch.ID, "stale")
	assert.True(t, errors.Is(err, discord.ErrNotConfigured))

	err = oldGateway.Dispatch(discord.EventMessageCreate, struct{}{})
	assert.True(t, errors.Is(err, discord.ErrClosed))

	// The fresh environment works.
	fresh := c.State().Guilds()[0].Channels[0]
	_, err = c.Request().SendMessage(ctx, fresh.ID, "fresh")
	assert.NoError(t, err)
}

func TestEndToEnd_MessageFlow(t *testing.T) {
	c, err := Configure(nil, WithDummyClient())
	require.NoError(t, err)

	g := c.State().Guilds()[0]
	ch := g.Channels[0]

	// A seeded member talks first, through the backend.
	other := g.Members[1]
	incoming, err := c.Backend().MakeMessage(ch, discord.MemberActor(other), "hi "+c.SelfUser().Mention())
	require.NoError(t, err)
	require.Len(t, incoming.Mentions, 1)
	assert.Equal(t, c.SelfUser().ID, incoming.Mentions[0].ID)

	ev, ok := c.Gateway().Next()
	require.True(t, ok)
	assert.Equal(t, discord.EventMessageCreate, ev.Type)

	// The code under test replies through the transport.
	reply, err := c.Request().SendMessage(ctx, ch.ID, "hello back")
	require.NoError(t, err)

	call, ok := c.Request().NextCall()
	require.True(t, ok)
	assert.Equal(t, "send_message", call.Op)

	// Both messages land in history in creation order.
	history, err := c.Request().History(ctx, ch.ID, request.HistoryOptions{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, incoming.ID, history[0].ID)
	assert.Equal(t, reply.ID, history[1].ID)

	// Reaction round trip.
	require.NoError(t, c.Request().AddReaction(ctx, ch.ID, incoming.ID, "👍"))
	cached, err := c.State().Message(incoming.ID)
	require.NoError(t, err)
	require.Len(t, cached.Reactions, 1)
	assert.True(t, cached.Reactions[0].Me)

	// Pin round trip.
	require.NoError(t, c.Request().PinMessage(ctx, ch.ID, reply.ID))
	pins, err := c.Request().PinsFrom(ctx, ch.ID)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, reply.ID, pins[0].ID)
}
