package state

import (
	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// PermissionsFor computes the user's effective permissions in a channel the
// way the real client resolves them: role base, administrator shortcut, then
// channel overwrites (everyone, roles, member). DM channels grant the full
// set to their participants.
func (s *State) PermissionsFor(ch *discord.Channel, userID discord.Snowflake) (discord.Permissions, error) {
	if ch.GuildID.IsZero() {
		return discord.PermissionAll, nil
	}

	g, err := s.Guild(ch.GuildID)
	if err != nil {
		return 0, err
	}
	m, err := s.Member(g.ID, userID)
	if err != nil {
		return 0, err
	}
	if g.OwnerID == userID {
		return discord.PermissionAll, nil
	}

	// Base set: everyone role plus the member's roles. The everyone role id
	// equals the guild id and is never stored in member role sets.
	var perms discord.Permissions
	for _, r := range g.Roles {
		if r.ID == g.ID || lo.Contains(m.Roles, r.ID) {
			perms |= r.Permissions
		}
	}
	if perms.Has(discord.PermissionAdministrator) {
		return discord.PermissionAll, nil
	}

	applies := func(o *discord.Overwrite) bool {
		switch o.Type {
		case discord.OverwriteTypeRole:
			return o.ID == g.ID || lo.Contains(m.Roles, o.ID)
		case discord.OverwriteTypeMember:
			return o.ID == userID
		}
		return false
	}

	// Everyone overwrite first, then role overwrites, then the member one.
	for _, o := range ch.PermissionOverwrites {
		if o.Type == discord.OverwriteTypeRole && o.ID == g.ID {
			perms = perms.Remove(o.Deny).Add(o.Allow)
		}
	}
	var allow, deny discord.Permissions
	for _, o := range ch.PermissionOverwrites {
		if o.Type == discord.OverwriteTypeRole && o.ID != g.ID && applies(o) {
			allow |= o.Allow
			deny |= o.Deny
		}
	}
	perms = perms.Remove(deny).Add(allow)
	for _, o := range ch.PermissionOverwrites {
		if o.Type == discord.OverwriteTypeMember && applies(o) {
			perms = perms.Remove(o.Deny).Add(o.Allow)
		}
	}
	return perms, nil
}
