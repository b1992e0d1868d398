// Package backend is the in-memory fake of the server side: the canonical
// store for guilds, channels, roles, members, users and per-channel message
// history, plus the event synthesizer that turns every mutation into the
// wire-shaped event the real service would push. Mutations never touch the
// client cache directly; they dispatch events through the gateway so the
// client's own parsing pipeline applies them.
package backend

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/gateway"
	"github.com/prilive-com/mockcord/state"
)

// Backend owns the canonical server-side state for one configured client.
type Backend struct {
	state    *state.State
	gateway  *gateway.Gateway
	gen      *discord.Generator
	messages map[discord.Snowflake][]*discord.Message
	users    map[discord.Snowflake]*discord.User
	logger   *slog.Logger
}

// Option configures the Backend.
type Option func(*Backend)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// WithGenerator sets a custom id generator.
func WithGenerator(gen *discord.Generator) Option {
	return func(b *Backend) {
		b.gen = gen
	}
}

// New creates a backend bound to a client cache and its fake gateway.
func New(st *state.State, gw *gateway.Gateway, opts ...Option) *Backend {
	b := &Backend{
		state:    st,
		gateway:  gw,
		messages: make(map[discord.Snowflake][]*discord.Message),
		users:    make(map[discord.Snowflake]*discord.User),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.gen == nil {
		b.gen = discord.NewGenerator(0)
	}
	b.users[st.SelfUser().ID] = st.SelfUser()
	return b
}

// State returns the client cache this backend drives.
func (b *Backend) State() *state.State { return b.state }

// NextID mints a fresh unique snowflake.
func (b *Backend) NextID() discord.Snowflake { return b.gen.Next() }

// ================== Guilds ==================

type guildParams struct {
	id       discord.Snowflake
	roles    []*discord.Role
	channels []*discord.Channel
	members  []*discord.Member
	owned    bool
}

// GuildOption configures MakeGuild.
type GuildOption func(*guildParams)

// WithGuildID sets an explicit guild id instead of auto-assigning one.
func WithGuildID(id discord.Snowflake) GuildOption {
	return func(p *guildParams) { p.id = id }
}

// WithGuildRoles seeds the guild's role list. The list must contain the
// implicit everyone role at position 0; MakeGuild adds one when the option
// is not used.
func WithGuildRoles(roles ...*discord.Role) GuildOption {
	return func(p *guildParams) { p.roles = roles }
}

// WithGuildChannels seeds the guild's channel list.
func WithGuildChannels(channels ...*discord.Channel) GuildOption {
	return func(p *guildParams) { p.channels = channels }
}

// WithGuildMembers seeds the guild's member list.
func WithGuildMembers(members ...*discord.Member) GuildOption {
	return func(p *guildParams) { p.members = members }
}

// OwnedBySelf marks the configured client's user as the guild owner.
func OwnedBySelf() GuildOption {
	return func(p *guildParams) { p.owned = true }
}

// MakeGuild adds a guild to the backend and replays GUILD_CREATE through
// the client parser.
func (b *Backend) MakeGuild(name string, opts ...GuildOption) (*discord.Guild, error) {
	var p guildParams
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}
	if p.roles == nil {
		p.roles = []*discord.Role{NewEveryoneRoleData(p.id)}
	}
	if p.channels == nil {
		p.channels = []*discord.Channel{}
	}
	if p.members == nil {
		p.members = []*discord.Member{}
	}
	memberCount := len(p.members)
	if memberCount == 0 {
		memberCount = 1
	}
	// Seeded members must be reachable through user lookups too, the same
	// way MakeMember registers its user.
	for _, m := range p.members {
		if m.User != nil {
			b.StoreUser(m.User)
		}
	}
	var ownerID discord.Snowflake
	if p.owned {
		ownerID = b.state.SelfUser().ID
	}

	data := NewGuildData(p.id, name, ownerID, p.roles, p.channels, p.members, memberCount)
	if err := b.gateway.Dispatch(discord.EventGuildCreate, data); err != nil {
		return nil, err
	}
	b.logger.Debug("guild created", "guild_id", p.id, "name", name)
	return b.state.Guild(p.id)
}

// UpdateGuild replays GUILD_UPDATE with the guild's current payload,
// optionally replacing the role list. Individual create/edit events for the
// replaced roles are not synthesized.
func (b *Backend) UpdateGuild(g *discord.Guild, roles discord.Optional[[]*discord.Role]) (*discord.Guild, error) {
	data := *g
	if v, ok := roles.Value(); ok {
		data.Roles = v
	}
	if err := b.gateway.Dispatch(discord.EventGuildUpdate, &data); err != nil {
		return nil, err
	}
	return g, nil
}

// ================== Roles ==================

type roleParams struct {
	id          discord.Snowflake
	color       int
	perms       discord.Permissions
	hoist       bool
	mentionable bool
}

// RoleOption configures MakeRole.
type RoleOption func(*roleParams)

// WithRoleID sets an explicit role id.
func WithRoleID(id discord.Snowflake) RoleOption {
	return func(p *roleParams) { p.id = id }
}

// WithRoleColor sets the role colour.
func WithRoleColor(color int) RoleOption {
	return func(p *roleParams) { p.color = color }
}

// WithRolePermissions sets the role's permission bitflags.
func WithRolePermissions(perms discord.Permissions) RoleOption {
	return func(p *roleParams) { p.perms = perms }
}

// WithRoleHoist displays the role separately in the member list.
func WithRoleHoist() RoleOption {
	return func(p *roleParams) { p.hoist = true }
}

// WithRoleMentionable allows anyone to mention the role.
func WithRoleMentionable() RoleOption {
	return func(p *roleParams) { p.mentionable = true }
}

// MakeRole adds a role to a guild and replays GUILD_ROLE_CREATE. New roles
// sit at position 1, above the everyone role.
func (b *Backend) MakeRole(guild *discord.Guild, name string, opts ...RoleOption) (*discord.Role, error) {
	p := roleParams{perms: discord.DefaultRolePermissions}
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}
	role := NewRoleData(p.id, name, p.perms, p.color, 1, p.hoist, p.mentionable)
	ev := discord.RoleCreateEvent{GuildID: guild.ID, Role: role}
	if err := b.gateway.Dispatch(discord.EventGuildRoleCreate, ev); err != nil {
		return nil, err
	}
	return b.state.Role(guild.ID, p.id)
}

// RoleUpdate carries the partial field changes for UpdateRole. Unset fields
// leave the stored value untouched.
type RoleUpdate struct {
	Name        discord.Optional[string]
	Color       discord.Optional[int]
	Permissions discord.Optional[discord.Permissions]
	Hoist       discord.Optional[bool]
	Mentionable discord.Optional[bool]
	Position    discord.Optional[int]
}

// UpdateRole applies the partial update and replays GUILD_ROLE_UPDATE.
func (b *Backend) UpdateRole(role *discord.Role, upd RoleUpdate) (*discord.Role, error) {
	data := *role
	if v, ok := upd.Name.Value(); ok {
		data.Name = v
	}
	if v, ok := upd.Color.Value(); ok {
		data.Color = v
	}
	if v, ok := upd.Permissions.Value(); ok {
		data.Permissions = v
		data.PermissionsNew = v
	}
	if v, ok := upd.Hoist.Value(); ok {
		data.Hoist = v
	}
	if v, ok := upd.Mentionable.Value(); ok {
		data.Mentionable = v
	}
	if v, ok := upd.Position.Value(); ok {
		data.Position = v
	}
	ev := discord.RoleCreateEvent{GuildID: role.GuildID, Role: &data}
	if err := b.gateway.Dispatch(discord.EventGuildRoleUpdate, ev); err != nil {
		return nil, err
	}
	return b.state.Role(role.GuildID, role.ID)
}

// DeleteRole removes a role from its guild via GUILD_ROLE_DELETE.
func (b *Backend) DeleteRole(role *discord.Role) error {
	ev := discord.RoleDeleteEvent{GuildID: role.GuildID, RoleID: role.ID}
	return b.gateway.Dispatch(discord.EventGuildRoleDelete, ev)
}

// ================== Channels ==================

type channelParams struct {
	id         discord.Snowflake
	position   int
	overwrites []*discord.Overwrite
	parentID   *discord.Snowflake
}

// ChannelOption configures MakeTextChannel and MakeCategoryChannel.
type ChannelOption func(*channelParams)

// WithChannelID sets an explicit channel id.
func WithChannelID(id discord.Snowflake) ChannelOption {
	return func(p *channelParams) { p.id = id }
}

// WithChannelPosition sets the channel position; by default channels are
// appended after the guild's existing ones.
func WithChannelPosition(position int) ChannelOption {
	return func(p *channelParams) { p.position = position }
}

// WithChannelOverwrites seeds the channel's permission overwrites.
func WithChannelOverwrites(overwrites ...*discord.Overwrite) ChannelOption {
	return func(p *channelParams) { p.overwrites = overwrites }
}

// WithChannelParent places the channel under a category.
func WithChannelParent(parentID discord.Snowflake) ChannelOption {
	return func(p *channelParams) { p.parentID = &parentID }
}

// MakeTextChannel adds a text channel to a guild via CHANNEL_CREATE.
func (b *Backend) MakeTextChannel(guild *discord.Guild, name string, opts ...ChannelOption) (*discord.Channel, error) {
	p := channelParams{position: -1}
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}
	if p.position < 0 {
		p.position = len(guild.Channels) + 1
	}
	data := NewTextChannelData(p.id, guild.ID, name, p.position, p.overwrites, p.parentID)
	if err := b.gateway.Dispatch(discord.EventChannelCreate, data); err != nil {
		return nil, err
	}
	return b.state.Channel(p.id)
}

// MakeCategoryChannel adds a category channel to a guild via CHANNEL_CREATE.
func (b *Backend) MakeCategoryChannel(guild *discord.Guild, name string, opts ...ChannelOption) (*discord.Channel, error) {
	p := channelParams{position: -1}
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}
	if p.position < 0 {
		categories := lo.CountBy(guild.Channels, func(c *discord.Channel) bool {
			return c.Type == discord.ChannelTypeCategory
		})
		p.position = categories + 1
	}
	data := NewCategoryChannelData(p.id, guild.ID, name, p.position, p.overwrites)
	if err := b.gateway.Dispatch(discord.EventChannelCreate, data); err != nil {
		return nil, err
	}
	return b.state.Channel(p.id)
}

// MakeDMChannel opens a direct-message channel with the given user.
func (b *Backend) MakeDMChannel(recipient *discord.User) (*discord.Channel, error) {
	data := NewDMChannelData(b.NextID(), recipient)
	if err := b.gateway.Dispatch(discord.EventChannelCreate, data); err != nil {
		return nil, err
	}
	return b.state.Channel(data.ID)
}

// UpdateChannelOverwrite upserts or removes one permission overwrite and
// replays CHANNEL_UPDATE. An unset overwrite leaves the list untouched, a
// null one removes the target's entry, a value replaces it.
func (b *Backend) UpdateChannelOverwrite(ch *discord.Channel, targetID discord.Snowflake, targetType discord.OverwriteType, overwrite discord.Optional[discord.Overwrite]) (*discord.Channel, error) {
	data := *ch
	if overwrite.IsSet() {
		kept := lo.Reject(ch.PermissionOverwrites, func(o *discord.Overwrite, _ int) bool {
			return o.ID == targetID
		})
		if v, ok := overwrite.Value(); ok {
			v.ID = targetID
			v.Type = targetType
			kept = append(kept, &v)
		}
		data.PermissionOverwrites = kept
	}
	if err := b.gateway.Dispatch(discord.EventChannelUpdate, &data); err != nil {
		return nil, err
	}
	return b.state.Channel(ch.ID)
}

// DeleteChannel removes a channel via CHANNEL_DELETE.
func (b *Backend) DeleteChannel(ch *discord.Channel) error {
	if err := b.gateway.Dispatch(discord.EventChannelDelete, ch); err != nil {
		return err
	}
	delete(b.messages, ch.ID)
	return nil
}

// ================== Users and members ==================

type userParams struct {
	id     discord.Snowflake
	avatar *string
}

// UserOption configures MakeUser.
type UserOption func(*userParams)

// WithUserID sets an explicit user id.
func WithUserID(id discord.Snowflake) UserOption {
	return func(p *userParams) { p.id = id }
}

// WithUserAvatar sets the user's avatar hash.
func WithUserAvatar(avatar string) UserOption {
	return func(p *userParams) { p.avatar = &avatar }
}

// MakeUser registers a user with the backend and the client cache. Users
// exist independently of guilds, so no event is synthesized.
func (b *Backend) MakeUser(username, discriminator string, opts ...UserOption) *discord.User {
	var p userParams
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}
	u := b.StoreUser(NewUserData(p.id, username, discriminator, p.avatar))
	return u
}

// StoreUser stores the user payload unless one with the same id is already
// registered, and returns the canonical copy.
func (b *Backend) StoreUser(u *discord.User) *discord.User {
	if cur, ok := b.users[u.ID]; ok {
		return cur
	}
	b.users[u.ID] = u
	return b.state.StoreUser(u)
}

// User returns a registered user by id.
func (b *Backend) User(id discord.Snowflake) (*discord.User, error) {
	u, ok := b.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", discord.ErrUnknownUser, id)
	}
	return u, nil
}

type memberParams struct {
	nick  *string
	roles []discord.Snowflake
}

// MemberOption configures MakeMember.
type MemberOption func(*memberParams)

// WithMemberNick sets the member's guild nickname.
func WithMemberNick(nick string) MemberOption {
	return func(p *memberParams) { p.nick = &nick }
}

// WithMemberRoles seeds the member's role set. The guild's implicit
// everyone role id is stripped.
func WithMemberRoles(roles ...discord.Snowflake) MemberOption {
	return func(p *memberParams) { p.roles = roles }
}

// MakeMember joins a user to a guild via GUILD_MEMBER_ADD.
func (b *Backend) MakeMember(user *discord.User, guild *discord.Guild, opts ...MemberOption) (*discord.Member, error) {
	var p memberParams
	for _, opt := range opts {
		opt(&p)
	}
	b.StoreUser(user)
	data := NewMemberData(guild, user, p.nick, p.roles)
	if err := b.gateway.Dispatch(discord.EventGuildMemberAdd, data); err != nil {
		return nil, err
	}
	return b.state.Member(guild.ID, user.ID)
}

// MemberUpdate carries the partial field changes for UpdateMember. A null
// Nick clears the nickname.
type MemberUpdate struct {
	Nick  discord.Optional[string]
	Roles discord.Optional[[]discord.Snowflake]
}

// UpdateMember applies the partial update and replays GUILD_MEMBER_UPDATE.
func (b *Backend) UpdateMember(m *discord.Member, upd MemberUpdate) (*discord.Member, error) {
	data := *m
	if upd.Nick.IsSet() {
		data.Nick = upd.Nick.Ptr()
	}
	if v, ok := upd.Roles.Value(); ok {
		data.Roles = stripEveryoneRole(m.GuildID, v)
	}
	if err := b.gateway.Dispatch(discord.EventGuildMemberUpdate, &data); err != nil {
		return nil, err
	}
	return b.state.Member(m.GuildID, m.User.ID)
}

// DeleteMember removes a member from its guild via GUILD_MEMBER_REMOVE.
func (b *Backend) DeleteMember(m *discord.Member) error {
	ev := discord.MemberRemoveEvent{GuildID: m.GuildID, User: m.User}
	return b.gateway.Dispatch(discord.EventGuildMemberRemove, ev)
}

// ================== Messages ==================

type messageParams struct {
	id          discord.Snowflake
	tts         bool
	embeds      []*discord.Embed
	attachments []*discord.Attachment
	nonce       *string
}

// MessageOption configures MakeMessage.
type MessageOption func(*messageParams)

// WithMessageID sets an explicit message id.
func WithMessageID(id discord.Snowflake) MessageOption {
	return func(p *messageParams) { p.id = id }
}

// WithTTS marks the message as text-to-speech.
func WithTTS() MessageOption {
	return func(p *messageParams) { p.tts = true }
}

// WithEmbeds attaches rich embeds.
func WithEmbeds(embeds ...*discord.Embed) MessageOption {
	return func(p *messageParams) { p.embeds = embeds }
}

// WithAttachments attaches uploaded files.
func WithAttachments(attachments ...*discord.Attachment) MessageOption {
	return func(p *messageParams) { p.attachments = attachments }
}

// WithNonce sets the client-supplied nonce.
func WithNonce(nonce string) MessageOption {
	return func(p *messageParams) { p.nonce = &nonce }
}

// MakeMessage creates a message in a channel: mentions are resolved against
// the channel's guild, MESSAGE_CREATE is replayed through the parser, and
// the payload is appended to the channel's history mirror.
func (b *Backend) MakeMessage(ch *discord.Channel, author discord.Actor, content string, opts ...MessageOption) (*discord.Message, error) {
	var p messageParams
	for _, opt := range opts {
		opt(&p)
	}
	if p.id.IsZero() {
		p.id = b.NextID()
	}

	var guild *discord.Guild
	var guildID *discord.Snowflake
	if !ch.GuildID.IsZero() {
		g, err := b.state.Guild(ch.GuildID)
		if err != nil {
			return nil, err
		}
		guild = g
		id := ch.GuildID
		guildID = &id
	}

	data := NewMessageData(p.id, ch, author.User(), content, guildID)
	data.TTS = p.tts
	data.Nonce = p.nonce
	if p.embeds != nil {
		data.Embeds = p.embeds
	}
	if p.attachments != nil {
		data.Attachments = p.attachments
	}
	data.Mentions = lo.Map(b.FindUserMentions(content, guild), func(m *discord.Member, _ int) *discord.User {
		return m.User
	})
	data.MentionRoles = b.FindRoleMentions(content, guild)
	data.MentionChannels = lo.Map(b.FindChannelMentions(content, guild), func(c *discord.Channel, _ int) *discord.ChannelMention {
		return &discord.ChannelMention{ID: c.ID, GuildID: c.GuildID, Type: c.Type, Name: c.Name}
	})

	if err := b.gateway.Dispatch(discord.EventMessageCreate, data); err != nil {
		return nil, err
	}
	b.messages[ch.ID] = append(b.messages[ch.ID], data)
	return b.state.Message(p.id)
}

// MessageEdit carries the partial field changes for EditMessage.
type MessageEdit struct {
	Content discord.Optional[string]
	Embeds  discord.Optional[[]*discord.Embed]
}

// EditMessage applies the partial update to the history mirror and replays
// MESSAGE_UPDATE so cache and mirror stay consistent.
func (b *Backend) EditMessage(channelID, messageID discord.Snowflake, upd MessageEdit) (*discord.Message, error) {
	data, _, err := b.findHistory(channelID, messageID)
	if err != nil {
		return nil, err
	}
	if v, ok := upd.Content.Value(); ok {
		data.Content = v
	}
	if v, ok := upd.Embeds.Value(); ok {
		data.Embeds = v
	}
	ts := wireTime(time.Now())
	data.EditedTimestamp = &ts
	if err := b.gateway.Dispatch(discord.EventMessageUpdate, data); err != nil {
		return nil, err
	}
	return b.state.Message(messageID)
}

// DeleteMessage removes a message via MESSAGE_DELETE and splices it out of
// the channel's history mirror.
func (b *Backend) DeleteMessage(m *discord.Message) error {
	ev := discord.MessageDeleteEvent{ID: m.ID, ChannelID: m.ChannelID, GuildID: m.GuildID}
	if err := b.gateway.Dispatch(discord.EventMessageDelete, ev); err != nil {
		return err
	}
	_, idx, err := b.findHistory(m.ChannelID, m.ID)
	if err != nil {
		return err
	}
	history := b.messages[m.ChannelID]
	b.messages[m.ChannelID] = append(history[:idx], history[idx+1:]...)
	return nil
}

// History returns the channel's message mirror in creation order, and
// whether the channel has one.
func (b *Backend) History(channelID discord.Snowflake) ([]*discord.Message, bool) {
	h, ok := b.messages[channelID]
	return h, ok
}

// findHistory locates a message in a channel mirror by linear scan.
func (b *Backend) findHistory(channelID, messageID discord.Snowflake) (*discord.Message, int, error) {
	history, ok := b.messages[channelID]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", discord.ErrUnknownChannel, channelID)
	}
	msg, idx, found := lo.FindIndexOf(history, func(m *discord.Message) bool { return m.ID == messageID })
	if !found {
		return nil, 0, fmt.Errorf("%w: %s", discord.ErrUnknownMessage, messageID)
	}
	return msg, idx, nil
}

// ================== Reactions and pins ==================

// AddReaction records a reaction via MESSAGE_REACTION_ADD and aggregates it
// into the message's emoji bucket: the count rises once per call and the
// "me" flag is set only when the actor is the configured client's own user.
func (b *Backend) AddReaction(m *discord.Message, actor discord.Actor, emoji string) error {
	em := ParseEmoji(emoji)
	ev := discord.ReactionEvent{
		UserID:    actor.User().ID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		GuildID:   m.GuildID,
		Emoji:     em,
	}
	// Reactions from someone other than the connected client carry the full
	// member so it ends up in the payload.
	if member, ok := actor.Member(); ok {
		ev.Member = member
	}
	if err := b.gateway.Dispatch(discord.EventReactionAdd, ev); err != nil {
		return err
	}

	data, _, err := b.findHistory(m.ChannelID, m.ID)
	if err != nil {
		return err
	}
	bucket, ok := lo.Find(data.Reactions, func(r *discord.Reaction) bool { return r.Emoji.Equal(em) })
	if !ok {
		bucket = &discord.Reaction{Emoji: em}
		data.Reactions = append(data.Reactions, bucket)
	}
	bucket.Count++
	if actor.User().ID == b.state.SelfUser().ID {
		bucket.Me = true
	}
	return nil
}

// RemoveReaction removes a reaction via MESSAGE_REACTION_REMOVE. The emoji
// bucket disappears once its count reaches zero.
func (b *Backend) RemoveReaction(m *discord.Message, actor discord.Actor, emoji string) error {
	em := ParseEmoji(emoji)
	ev := discord.ReactionEvent{
		UserID:    actor.User().ID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		GuildID:   m.GuildID,
		Emoji:     em,
	}
	if err := b.gateway.Dispatch(discord.EventReactionRemove, ev); err != nil {
		return err
	}

	data, _, err := b.findHistory(m.ChannelID, m.ID)
	if err != nil {
		return err
	}
	bucket, ok := lo.Find(data.Reactions, func(r *discord.Reaction) bool { return r.Emoji.Equal(em) })
	if !ok {
		return nil
	}
	bucket.Count--
	if actor.User().ID == b.state.SelfUser().ID {
		bucket.Me = false
	}
	if bucket.Count <= 0 {
		data.Reactions = lo.Reject(data.Reactions, func(r *discord.Reaction, _ int) bool { return r.Emoji.Equal(em) })
	}
	return nil
}

// ClearReactions drops every reaction via MESSAGE_REACTION_REMOVE_ALL.
func (b *Backend) ClearReactions(m *discord.Message) error {
	ev := discord.ReactionRemoveAllEvent{ChannelID: m.ChannelID, MessageID: m.ID, GuildID: m.GuildID}
	if err := b.gateway.Dispatch(discord.EventReactionRemoveAll, ev); err != nil {
		return err
	}
	data, _, err := b.findHistory(m.ChannelID, m.ID)
	if err != nil {
		return err
	}
	data.Reactions = nil
	return nil
}

// PinMessage marks a message pinned and replays CHANNEL_PINS_UPDATE.
func (b *Backend) PinMessage(channelID, messageID discord.Snowflake) error {
	data, _, err := b.findHistory(channelID, messageID)
	if err != nil {
		return err
	}
	data.Pinned = true
	ts := wireTime(time.Now())
	ev := discord.PinsUpdateEvent{ChannelID: channelID, LastPinTimestamp: &ts}
	return b.gateway.Dispatch(discord.EventChannelPinsUpdate, ev)
}

// UnpinMessage clears the pin flag and replays CHANNEL_PINS_UPDATE with a
// null timestamp.
func (b *Backend) UnpinMessage(channelID, messageID discord.Snowflake) error {
	data, _, err := b.findHistory(channelID, messageID)
	if err != nil {
		return err
	}
	data.Pinned = false
	ev := discord.PinsUpdateEvent{ChannelID: channelID, LastPinTimestamp: nil}
	return b.gateway.Dispatch(discord.EventChannelPinsUpdate, ev)
}
