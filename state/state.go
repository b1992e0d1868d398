// Package state implements the client-side object cache the fake backend
// drives. Every Parse* method is an event-parsing entry point: it takes the
// raw wire payload the gateway replayed and updates the cache exactly as the
// client library would against the real service. Test assertions read the
// cache through the accessors.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// State is the client-side cache. It holds derived copies of server
// entities, rebuilt only from parsed events, never by direct mutation.
type State struct {
	self     *discord.User
	guilds   map[discord.Snowflake]*discord.Guild
	channels map[discord.Snowflake]*discord.Channel
	users    map[discord.Snowflake]*discord.User
	messages map[discord.Snowflake]*discord.Message
	logger   *slog.Logger
}

// Option configures the State.
type Option func(*State)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New creates a cache connected to the given self user.
func New(self *discord.User, opts ...Option) *State {
	s := &State{
		self:     self,
		guilds:   make(map[discord.Snowflake]*discord.Guild),
		channels: make(map[discord.Snowflake]*discord.Channel),
		users:    make(map[discord.Snowflake]*discord.User),
		messages: make(map[discord.Snowflake]*discord.Message),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.users[self.ID] = self
	return s
}

// SelfUser returns the connected user.
func (s *State) SelfUser() *discord.User { return s.self }

// Guilds returns all cached guilds. Order is not guaranteed; callers
// needing creation order should sort by id.
func (s *State) Guilds() []*discord.Guild {
	return lo.Values(s.guilds)
}

// Guild returns the cached guild by id.
func (s *State) Guild(id discord.Snowflake) (*discord.Guild, error) {
	g, ok := s.guilds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", discord.ErrUnknownGuild, id)
	}
	return g, nil
}

// Channel returns the cached channel by id (guild or DM).
func (s *State) Channel(id discord.Snowflake) (*discord.Channel, error) {
	c, ok := s.channels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", discord.ErrUnknownChannel, id)
	}
	return c, nil
}

// Member returns the cached member of a guild by user id.
func (s *State) Member(guildID, userID discord.Snowflake) (*discord.Member, error) {
	g, err := s.Guild(guildID)
	if err != nil {
		return nil, err
	}
	m, ok := lo.Find(g.Members, func(m *discord.Member) bool { return m.User.ID == userID })
	if !ok {
		return nil, fmt.Errorf("%w: %s in guild %s", discord.ErrUnknownMember, userID, guildID)
	}
	return m, nil
}

// Role returns a guild role by id.
func (s *State) Role(guildID, roleID discord.Snowflake) (*discord.Role, error) {
	g, err := s.Guild(guildID)
	if err != nil {
		return nil, err
	}
	r, ok := lo.Find(g.Roles, func(r *discord.Role) bool { return r.ID == roleID })
	if !ok {
		return nil, fmt.Errorf("%w: %s in guild %s", discord.ErrUnknownRole, roleID, guildID)
	}
	return r, nil
}

// Message returns a cached message by id.
func (s *State) Message(id discord.Snowflake) (*discord.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", discord.ErrUnknownMessage, id)
	}
	return m, nil
}

// User returns a cached user by id.
func (s *State) User(id discord.Snowflake) (*discord.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", discord.ErrUnknownUser, id)
	}
	return u, nil
}

// StoreUser stores the user payload unless a user with the same id is
// already cached, and returns the canonical cached copy.
func (s *State) StoreUser(u *discord.User) *discord.User {
	if cached, ok := s.users[u.ID]; ok {
		return cached
	}
	s.users[u.ID] = u
	return u
}

// Parse pipeline

// ParseGuildCreate handles GUILD_CREATE.
func (s *State) ParseGuildCreate(data json.RawMessage) error {
	var g discord.Guild
	if err := json.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("parse guild create: %w", err)
	}
	s.guilds[g.ID] = &g
	for _, ch := range g.Channels {
		s.channels[ch.ID] = ch
	}
	for _, m := range g.Members {
		m.User = s.StoreUser(m.User)
	}
	s.logger.Debug("guild cached", "guild_id", g.ID, "name", g.Name)
	return nil
}

// ParseGuildUpdate handles GUILD_UPDATE. Channel and member lists of the
// cached guild are kept; only guild-level fields and roles are replaced.
func (s *State) ParseGuildUpdate(data json.RawMessage) error {
	var g discord.Guild
	if err := json.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("parse guild update: %w", err)
	}
	cur, err := s.Guild(g.ID)
	if err != nil {
		return err
	}
	g.Channels = cur.Channels
	g.Members = cur.Members
	*cur = g
	return nil
}

// ParseGuildRoleCreate handles GUILD_ROLE_CREATE.
func (s *State) ParseGuildRoleCreate(data json.RawMessage) error {
	var ev discord.RoleCreateEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse role create: %w", err)
	}
	g, err := s.Guild(ev.GuildID)
	if err != nil {
		return err
	}
	ev.Role.GuildID = g.ID
	g.Roles = append(g.Roles, ev.Role)
	return nil
}

// ParseGuildRoleUpdate handles GUILD_ROLE_UPDATE.
func (s *State) ParseGuildRoleUpdate(data json.RawMessage) error {
	var ev discord.RoleCreateEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse role update: %w", err)
	}
	cur, err := s.Role(ev.GuildID, ev.Role.ID)
	if err != nil {
		return err
	}
	ev.Role.GuildID = ev.GuildID
	*cur = *ev.Role
	return nil
}

// ParseGuildRoleDelete handles GUILD_ROLE_DELETE.
func (s *State) ParseGuildRoleDelete(data json.RawMessage) error {
	var ev discord.RoleDeleteEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse role delete: %w", err)
	}
	g, err := s.Guild(ev.GuildID)
	if err != nil {
		return err
	}
	g.Roles = lo.Reject(g.Roles, func(r *discord.Role, _ int) bool { return r.ID == ev.RoleID })
	// Deleted roles disappear from member role sets as on the real service.
	for _, m := range g.Members {
		m.Roles = lo.Reject(m.Roles, func(id discord.Snowflake, _ int) bool { return id == ev.RoleID })
	}
	return nil
}

// ParseChannelCreate handles CHANNEL_CREATE.
func (s *State) ParseChannelCreate(data json.RawMessage) error {
	var c discord.Channel
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse channel create: %w", err)
	}
	s.channels[c.ID] = &c
	if !c.GuildID.IsZero() {
		g, err := s.Guild(c.GuildID)
		if err != nil {
			return err
		}
		g.Channels = append(g.Channels, &c)
	}
	return nil
}

// ParseChannelUpdate handles CHANNEL_UPDATE.
func (s *State) ParseChannelUpdate(data json.RawMessage) error {
	var c discord.Channel
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse channel update: %w", err)
	}
	cur, err := s.Channel(c.ID)
	if err != nil {
		return err
	}
	*cur = c
	return nil
}

// ParseChannelDelete handles CHANNEL_DELETE.
func (s *State) ParseChannelDelete(data json.RawMessage) error {
	var c discord.Channel
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse channel delete: %w", err)
	}
	delete(s.channels, c.ID)
	if !c.GuildID.IsZero() {
		if g, err := s.Guild(c.GuildID); err == nil {
			g.Channels = lo.Reject(g.Channels, func(ch *discord.Channel, _ int) bool { return ch.ID == c.ID })
		}
	}
	return nil
}

// ParseChannelPinsUpdate handles CHANNEL_PINS_UPDATE.
func (s *State) ParseChannelPinsUpdate(data json.RawMessage) error {
	var ev discord.PinsUpdateEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse pins update: %w", err)
	}
	ch, err := s.Channel(ev.ChannelID)
	if err != nil {
		return err
	}
	ch.LastPinTimestamp = ev.LastPinTimestamp
	return nil
}

// ParseGuildMemberAdd handles GUILD_MEMBER_ADD.
func (s *State) ParseGuildMemberAdd(data json.RawMessage) error {
	var m discord.Member
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse member add: %w", err)
	}
	g, err := s.Guild(m.GuildID)
	if err != nil {
		return err
	}
	m.User = s.StoreUser(m.User)
	g.Members = append(g.Members, &m)
	g.MemberCount++
	return nil
}

// ParseGuildMemberUpdate handles GUILD_MEMBER_UPDATE.
func (s *State) ParseGuildMemberUpdate(data json.RawMessage) error {
	var m discord.Member
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse member update: %w", err)
	}
	cur, err := s.Member(m.GuildID, m.User.ID)
	if err != nil {
		return err
	}
	m.User = cur.User
	*cur = m
	return nil
}

// ParseGuildMemberRemove handles GUILD_MEMBER_REMOVE.
func (s *State) ParseGuildMemberRemove(data json.RawMessage) error {
	var ev discord.MemberRemoveEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse member remove: %w", err)
	}
	g, err := s.Guild(ev.GuildID)
	if err != nil {
		return err
	}
	before := len(g.Members)
	g.Members = lo.Reject(g.Members, func(m *discord.Member, _ int) bool { return m.User.ID == ev.User.ID })
	if len(g.Members) < before {
		g.MemberCount--
	}
	return nil
}

// ParseMessageCreate handles MESSAGE_CREATE.
func (s *State) ParseMessageCreate(data json.RawMessage) error {
	var m discord.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse message create: %w", err)
	}
	s.messages[m.ID] = &m
	if ch, err := s.Channel(m.ChannelID); err == nil {
		id := m.ID
		ch.LastMessageID = &id
	}
	return nil
}

// ParseMessageUpdate handles MESSAGE_UPDATE. The fake backend always
// dispatches full message payloads, so the cached entry is replaced.
func (s *State) ParseMessageUpdate(data json.RawMessage) error {
	var m discord.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse message update: %w", err)
	}
	cur, ok := s.messages[m.ID]
	if !ok {
		s.messages[m.ID] = &m
		return nil
	}
	*cur = m
	return nil
}

// ParseMessageDelete handles MESSAGE_DELETE.
func (s *State) ParseMessageDelete(data json.RawMessage) error {
	var ev discord.MessageDeleteEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse message delete: %w", err)
	}
	delete(s.messages, ev.ID)
	return nil
}

// ParseReactionAdd handles MESSAGE_REACTION_ADD.
func (s *State) ParseReactionAdd(data json.RawMessage) error {
	var ev discord.ReactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse reaction add: %w", err)
	}
	m, ok := s.messages[ev.MessageID]
	if !ok {
		return nil // reactions on uncached messages are dropped, as on the real client
	}
	bucket, ok := lo.Find(m.Reactions, func(r *discord.Reaction) bool { return r.Emoji.Equal(ev.Emoji) })
	if !ok {
		bucket = &discord.Reaction{Emoji: ev.Emoji}
		m.Reactions = append(m.Reactions, bucket)
	}
	bucket.Count++
	if ev.UserID == s.self.ID {
		bucket.Me = true
	}
	return nil
}

// ParseReactionRemove handles MESSAGE_REACTION_REMOVE.
func (s *State) ParseReactionRemove(data json.RawMessage) error {
	var ev discord.ReactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse reaction remove: %w", err)
	}
	m, ok := s.messages[ev.MessageID]
	if !ok {
		return nil
	}
	bucket, ok := lo.Find(m.Reactions, func(r *discord.Reaction) bool { return r.Emoji.Equal(ev.Emoji) })
	if !ok {
		return nil
	}
	bucket.Count--
	if ev.UserID == s.self.ID {
		bucket.Me = false
	}
	if bucket.Count <= 0 {
		m.Reactions = lo.Reject(m.Reactions, func(r *discord.Reaction, _ int) bool { return r.Emoji.Equal(ev.Emoji) })
	}
	return nil
}

// ParseReactionRemoveAll handles MESSAGE_REACTION_REMOVE_ALL.
func (s *State) ParseReactionRemoveAll(data json.RawMessage) error {
	var ev discord.ReactionRemoveAllEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("parse reaction remove all: %w", err)
	}
	if m, ok := s.messages[ev.MessageID]; ok {
		m.Reactions = nil
	}
	return nil
}
