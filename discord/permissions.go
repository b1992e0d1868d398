package discord

// Permissions is the permission bitflag set carried by roles and overwrites.
type Permissions int64

const (
	PermissionCreateInstantInvite Permissions = 1 << 0
	PermissionKickMembers         Permissions = 1 << 1
	PermissionBanMembers          Permissions = 1 << 2
	PermissionAdministrator       Permissions = 1 << 3
	PermissionManageChannels      Permissions = 1 << 4
	PermissionManageGuild         Permissions = 1 << 5
	PermissionAddReactions        Permissions = 1 << 6
	PermissionViewAuditLog        Permissions = 1 << 7
	PermissionViewChannel         Permissions = 1 << 10
	PermissionSendMessages        Permissions = 1 << 11
	PermissionManageMessages      Permissions = 1 << 13
	PermissionEmbedLinks          Permissions = 1 << 14
	PermissionAttachFiles         Permissions = 1 << 15
	PermissionReadMessageHistory  Permissions = 1 << 16
	PermissionMentionEveryone     Permissions = 1 << 17
	PermissionUseExternalEmojis   Permissions = 1 << 18
	PermissionConnect             Permissions = 1 << 20
	PermissionSpeak               Permissions = 1 << 21
	PermissionChangeNickname      Permissions = 1 << 26
	PermissionManageNicknames     Permissions = 1 << 27
	PermissionManageRoles         Permissions = 1 << 28
	PermissionManageWebhooks      Permissions = 1 << 29
)

// DefaultRolePermissions is the permission set assigned to newly created
// roles, matching the real service's default for the everyone role.
const DefaultRolePermissions Permissions = 104324161

// PermissionAll covers every defined permission bit. Administrators and DM
// participants resolve to this set.
const PermissionAll Permissions = 1<<30 - 1

// Has reports whether every bit in p is present in the set.
func (perms Permissions) Has(p Permissions) bool {
	return perms&p == p
}

// Add returns the set with the given bits added.
func (perms Permissions) Add(p Permissions) Permissions {
	return perms | p
}

// Remove returns the set with the given bits cleared.
func (perms Permissions) Remove(p Permissions) Permissions {
	return perms &^ p
}
