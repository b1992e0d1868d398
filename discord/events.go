package discord

// Event names as dispatched over the real service's gateway. The fake
// gateway uses the same names so client-side dispatch tables under test
// behave identically.
const (
	EventGuildCreate       = "GUILD_CREATE"
	EventGuildUpdate       = "GUILD_UPDATE"
	EventGuildRoleCreate   = "GUILD_ROLE_CREATE"
	EventGuildRoleUpdate   = "GUILD_ROLE_UPDATE"
	EventGuildRoleDelete   = "GUILD_ROLE_DELETE"
	EventChannelCreate     = "CHANNEL_CREATE"
	EventChannelUpdate     = "CHANNEL_UPDATE"
	EventChannelDelete     = "CHANNEL_DELETE"
	EventChannelPinsUpdate = "CHANNEL_PINS_UPDATE"
	EventGuildMemberAdd    = "GUILD_MEMBER_ADD"
	EventGuildMemberUpdate = "GUILD_MEMBER_UPDATE"
	EventGuildMemberRemove = "GUILD_MEMBER_REMOVE"
	EventMessageCreate     = "MESSAGE_CREATE"
	EventMessageUpdate     = "MESSAGE_UPDATE"
	EventMessageDelete     = "MESSAGE_DELETE"
	EventReactionAdd       = "MESSAGE_REACTION_ADD"
	EventReactionRemove    = "MESSAGE_REACTION_REMOVE"
	EventReactionRemoveAll = "MESSAGE_REACTION_REMOVE_ALL"
)

// RoleCreateEvent is the body of GUILD_ROLE_CREATE and GUILD_ROLE_UPDATE.
type RoleCreateEvent struct {
	GuildID Snowflake `json:"guild_id"`
	Role    *Role     `json:"role"`
}

// RoleDeleteEvent is the body of GUILD_ROLE_DELETE.
type RoleDeleteEvent struct {
	GuildID Snowflake `json:"guild_id"`
	RoleID  Snowflake `json:"role_id"`
}

// MemberRemoveEvent is the body of GUILD_MEMBER_REMOVE.
type MemberRemoveEvent struct {
	GuildID Snowflake `json:"guild_id"`
	User    *User     `json:"user"`
}

// MessageDeleteEvent is the body of MESSAGE_DELETE.
type MessageDeleteEvent struct {
	ID        Snowflake  `json:"id"`
	ChannelID Snowflake  `json:"channel_id"`
	GuildID   *Snowflake `json:"guild_id,omitempty"`
}

// ReactionEvent is the body of MESSAGE_REACTION_ADD and
// MESSAGE_REACTION_REMOVE. Member is present on add when the reacting
// actor is a guild member rather than the connected user.
type ReactionEvent struct {
	UserID    Snowflake  `json:"user_id"`
	ChannelID Snowflake  `json:"channel_id"`
	MessageID Snowflake  `json:"message_id"`
	GuildID   *Snowflake `json:"guild_id,omitempty"`
	Member    *Member    `json:"member,omitempty"`
	Emoji     Emoji      `json:"emoji"`
}

// ReactionRemoveAllEvent is the body of MESSAGE_REACTION_REMOVE_ALL.
type ReactionRemoveAllEvent struct {
	ChannelID Snowflake  `json:"channel_id"`
	MessageID Snowflake  `json:"message_id"`
	GuildID   *Snowflake `json:"guild_id,omitempty"`
}

// PinsUpdateEvent is the body of CHANNEL_PINS_UPDATE.
type PinsUpdateEvent struct {
	ChannelID        Snowflake `json:"channel_id"`
	LastPinTimestamp *string   `json:"last_pin_timestamp"`
}
