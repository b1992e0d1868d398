package request

import (
	"context"
	"sort"

	"github.com/prilive-com/mockcord/discord"
)

// GuildsOptions selects the guild listing window, mirroring the paginated
// "my guilds" endpoint.
type GuildsOptions struct {
	Limit  int
	Before *discord.Snowflake
	After  *discord.Snowflake
}

// GetGuilds lists the guilds visible to the connected user in id order.
// Limit is clamped to 1..200 with a default of 200.
func (f *Facade) GetGuilds(ctx context.Context, opts GuildsOptions) ([]*discord.Guild, error) {
	if err := f.guard("get_guilds", map[string]any{"limit": opts.Limit}); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	guilds := f.state.Guilds()
	sort.Slice(guilds, func(i, j int) bool { return guilds[i].ID < guilds[j].ID })

	var out []*discord.Guild
	for _, g := range guilds {
		if opts.Before != nil && g.ID >= *opts.Before {
			continue
		}
		if opts.After != nil && g.ID <= *opts.After {
			continue
		}
		out = append(out, g)
	}
	if opts.Before != nil && len(out) > limit {
		// A before cursor pages backwards, so keep the newest window.
		out = out[len(out)-limit:]
	} else if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetGuild fetches one guild by id.
func (f *Facade) GetGuild(ctx context.Context, guildID discord.Snowflake) (*discord.Guild, error) {
	if err := f.guard("get_guild", map[string]any{"guild_id": guildID}); err != nil {
		return nil, err
	}
	return f.guild("get_guild", guildID)
}

// GetMember fetches one guild member.
func (f *Facade) GetMember(ctx context.Context, guildID, userID discord.Snowflake) (*discord.Member, error) {
	if err := f.guard("get_member", map[string]any{"guild_id": guildID, "user_id": userID}); err != nil {
		return nil, err
	}
	return f.member("get_member", guildID, userID)
}

// GetUser fetches one user by id.
func (f *Facade) GetUser(ctx context.Context, userID discord.Snowflake) (*discord.User, error) {
	if err := f.guard("get_user", map[string]any{"user_id": userID}); err != nil {
		return nil, err
	}
	u, err := f.backend.User(userID)
	if err != nil {
		return nil, discord.NewNotFound("get_user", "unknown user", discord.ErrUnknownUser)
	}
	return u, nil
}

// GetSelf returns the connected user.
func (f *Facade) GetSelf(ctx context.Context) (*discord.User, error) {
	if err := f.guard("get_self", nil); err != nil {
		return nil, err
	}
	return f.state.SelfUser(), nil
}
