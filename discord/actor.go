package discord

// Actor is the closed set of entities that can author messages and
// reactions: a bare user (DM context, or the connected client itself) or a
// guild member. It replaces duck-typed "user-or-member" parameters with an
// explicit tagged variant.
type Actor struct {
	user   *User
	member *Member
}

// UserActor wraps a bare user.
func UserActor(u *User) Actor {
	return Actor{user: u}
}

// MemberActor wraps a guild member.
func MemberActor(m *Member) Actor {
	return Actor{member: m}
}

// User returns the underlying user for either variant.
func (a Actor) User() *User {
	if a.member != nil {
		return a.member.User
	}
	return a.user
}

// Member returns the member variant, or ok=false for a bare user.
func (a Actor) Member() (*Member, bool) {
	return a.member, a.member != nil
}

// IsZero reports whether the actor carries neither variant.
func (a Actor) IsZero() bool {
	return a.user == nil && a.member == nil
}
