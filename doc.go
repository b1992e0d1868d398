// Package mockcord provides an in-process fake of a Discord-style chat
// service for testing bot and client code without a network.
//
// mockcord keeps a canonical server-side state (guilds, channels, roles,
// members, messages) in the backend package and mirrors every mutation into
// a client-side cache by replaying wire-shaped events through the cache's
// own parsing pipeline. The request package exposes the transport facade
// the code under test calls; supported endpoints enforce the permission
// checks the real service would and everything else fails with a
// self-describing error.
//
// # Quick Start
//
//	client, err := mockcord.Configure(nil,
//	    mockcord.WithDummyClient(),
//	    mockcord.WithSeedChannels(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	guild := client.State().Guilds()[0]
//	channel := guild.Channels[0]
//
//	msg, err := client.Request().SendMessage(context.Background(), channel.ID, "hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ev, _ := client.Gateway().Next()
//	fmt.Println(ev.Type, msg.ID)
//
// # Driving the backend directly
//
// Server-side fixtures that should not count as client traffic go through
// the backend:
//
//	user := client.Backend().MakeUser("Alice", "0002")
//	member, _ := client.Backend().MakeMember(user, guild)
//	client.Backend().MakeMessage(channel, discord.MemberActor(member), "hi")
//
// # Shared Types
//
// All wire types are in the discord subpackage:
//
//	import "github.com/prilive-com/mockcord/discord"
//	var msg discord.Message
//	var user discord.User
//
// # Features
//
//   - Wire-shaped event replay through the client parse pipeline
//   - FIFO event and transport call logs for assertions
//   - Permission resolution with roles and channel overwrites
//   - Tri-state partial updates (keep, clear, set)
//   - Mention scanning for users, roles and channels
//   - Attachment records backed by real files
//   - Structured logging with slog
package mockcord
