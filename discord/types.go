package discord

// Wire-shaped records mirroring the real service's payloads. These are what
// the fake backend stores and what the event pipeline replays; field names
// and nullability must match what the client-side parser expects.

// User represents a platform user account.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        *string   `json:"avatar"`
	Bot           bool      `json:"bot,omitempty"`
}

// Mention returns the lexical mention token for the user.
func (u *User) Mention() string {
	return "<@" + u.ID.String() + ">"
}

// Member joins a User with guild-scoped state. GuildID is populated by the
// backend so members stay routable without their parent guild.
type Member struct {
	User     *User       `json:"user"`
	GuildID  Snowflake   `json:"guild_id,omitempty"`
	Nick     *string     `json:"nick"`
	Roles    []Snowflake `json:"roles"`
	JoinedAt string      `json:"joined_at"`
	Deaf     bool        `json:"deaf"`
	Mute     bool        `json:"mute"`
}

// DisplayName returns the nick when set, else the username.
func (m *Member) DisplayName() string {
	if m.Nick != nil {
		return *m.Nick
	}
	return m.User.Username
}

// Role represents a guild role. Permissions carries the legacy numeric
// field; PermissionsNew mirrors it in the newer string-encoded field.
type Role struct {
	ID             Snowflake   `json:"id"`
	GuildID        Snowflake   `json:"guild_id,omitempty"`
	Name           string      `json:"name"`
	Color          int         `json:"color"`
	Hoist          bool        `json:"hoist"`
	Position       int         `json:"position"`
	Permissions    Permissions `json:"permissions"`
	PermissionsNew Permissions `json:"permissions_new,string"`
	Managed        bool        `json:"managed"`
	Mentionable    bool        `json:"mentionable"`
}

// Mention returns the lexical mention token for the role.
func (r *Role) Mention() string {
	return "<@&" + r.ID.String() + ">"
}

// ChannelType is the closed set of channel kinds the double models.
type ChannelType int

const (
	ChannelTypeGuildText ChannelType = 0
	ChannelTypeDM        ChannelType = 1
	ChannelTypeCategory  ChannelType = 4
)

// OverwriteType discriminates permission-overwrite targets.
type OverwriteType int

const (
	OverwriteTypeRole   OverwriteType = 0
	OverwriteTypeMember OverwriteType = 1
)

// Overwrite is a channel-scoped allow/deny permission delta.
type Overwrite struct {
	ID    Snowflake     `json:"id"`
	Type  OverwriteType `json:"type"`
	Allow Permissions   `json:"allow,string"`
	Deny  Permissions   `json:"deny,string"`
}

// Channel represents a guild text channel, a category, or a DM channel.
type Channel struct {
	ID                   Snowflake    `json:"id"`
	Type                 ChannelType  `json:"type"`
	GuildID              Snowflake    `json:"guild_id,omitempty"`
	Name                 string       `json:"name,omitempty"`
	Position             int          `json:"position,omitempty"`
	ParentID             *Snowflake   `json:"parent_id"`
	PermissionOverwrites []*Overwrite `json:"permission_overwrites,omitempty"`
	Topic                *string      `json:"topic,omitempty"`
	LastMessageID        *Snowflake   `json:"last_message_id"`
	LastPinTimestamp     *string      `json:"last_pin_timestamp,omitempty"`
	Recipients           []*User      `json:"recipients,omitempty"`
}

// Mention returns the lexical mention token for the channel.
func (c *Channel) Mention() string {
	return "<#" + c.ID.String() + ">"
}

// Guild represents a community container owning channels, roles and members.
type Guild struct {
	ID          Snowflake  `json:"id"`
	Name        string     `json:"name"`
	OwnerID     Snowflake  `json:"owner_id"`
	Icon        *string    `json:"icon"`
	Splash      *string    `json:"splash"`
	Region      string     `json:"region"`
	MemberCount int        `json:"member_count"`
	Roles       []*Role    `json:"roles"`
	Channels    []*Channel `json:"channels"`
	Members     []*Member  `json:"members"`
}

// Emoji identifies a reaction emoji: custom emojis carry an id, unicode
// emojis a name only (null id).
type Emoji struct {
	ID   *Snowflake `json:"id"`
	Name string     `json:"name"`
}

// Equal reports whether two emojis identify the same reaction bucket.
func (e Emoji) Equal(other Emoji) bool {
	if (e.ID == nil) != (other.ID == nil) {
		return false
	}
	if e.ID != nil && *e.ID != *other.ID {
		return false
	}
	return e.Name == other.Name
}

// Reaction aggregates reactions on a message by emoji.
type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}

// Attachment describes an uploaded file. URL is a file:// URI pointing at
// the local spool file standing in for a CDN address.
type Attachment struct {
	ID       Snowflake `json:"id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
	ProxyURL string    `json:"proxy_url"`
}

// EmbedField is a single field of a rich embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a rich-content block attached to a message.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// ChannelMention is the resolved form of a channel reference in content.
type ChannelMention struct {
	ID      Snowflake   `json:"id"`
	GuildID Snowflake   `json:"guild_id"`
	Type    ChannelType `json:"type"`
	Name    string      `json:"name"`
}

// Message represents a channel message.
type Message struct {
	ID              Snowflake         `json:"id"`
	ChannelID       Snowflake         `json:"channel_id"`
	GuildID         *Snowflake        `json:"guild_id,omitempty"`
	Author          *User             `json:"author"`
	Content         string            `json:"content"`
	Timestamp       string            `json:"timestamp"`
	EditedTimestamp *string           `json:"edited_timestamp"`
	TTS             bool              `json:"tts"`
	MentionEveryone bool              `json:"mention_everyone"`
	Mentions        []*User           `json:"mentions"`
	MentionRoles    []Snowflake       `json:"mention_roles"`
	MentionChannels []*ChannelMention `json:"mention_channels,omitempty"`
	Attachments     []*Attachment     `json:"attachments"`
	Embeds          []*Embed          `json:"embeds"`
	Reactions       []*Reaction       `json:"reactions,omitempty"`
	Pinned          bool              `json:"pinned"`
	Nonce           *string           `json:"nonce,omitempty"`
	Type            int               `json:"type"`
}
