// Package request is the fake transport facade: the surface the client
// library under test calls instead of the real HTTP API. Supported
// endpoints validate input, enforce the permission checks the real service
// would, mutate the backend and return the refreshed entity; everything
// else fails with a self-describing UnsupportedError. Every call is
// recorded in a FIFO log so tests can assert on what the code under test
// requested.
//
// Operations take a context.Context to keep the real client's calling
// convention, but everything completes synchronously in process, so the
// context is never consulted.
package request

import (
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/state"
)

// Call is one recorded transport invocation.
type Call struct {
	Op   string
	Args map[string]any
}

// Facade is the fake transport bound to one backend and its client cache.
type Facade struct {
	backend  *backend.Backend
	state    *state.State
	logger   *slog.Logger
	validate *validator.Validate

	mu     sync.Mutex
	closed bool
	calls  []Call
}

// Option configures the Facade.
type Option func(*Facade)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) {
		f.logger = logger
	}
}

// New creates a facade over the given backend.
func New(b *backend.Backend, opts ...Option) *Facade {
	f := &Facade{
		backend:  b,
		state:    b.State(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Close detaches the facade; every later call fails with ErrNotConfigured.
// Reconfiguring closes the previous facade so stale references fail loudly
// instead of mutating the wrong backend.
func (f *Facade) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// guard records the call and rejects it when the facade is detached.
func (f *Facade) guard(op string, args map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return discord.ErrNotConfigured
	}
	f.calls = append(f.calls, Call{Op: op, Args: args})
	f.logger.Debug("transport call", "op", op)
	return nil
}

// NextCall pops the oldest recorded call, or ok=false when the log is empty.
func (f *Facade) NextCall() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}, false
	}
	c := f.calls[0]
	f.calls = f.calls[1:]
	return c, true
}

// Calls returns a copy of all recorded calls in order.
func (f *Facade) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// DrainCalls removes and returns all recorded calls.
func (f *Facade) DrainCalls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.calls
	f.calls = nil
	return out
}

// checkPermission verifies the connected user holds need in the channel.
func (f *Facade) checkPermission(op string, ch *discord.Channel, need discord.Permissions, reason string) error {
	perms, err := f.state.PermissionsFor(ch, f.state.SelfUser().ID)
	if err != nil {
		return discord.NewForbidden(op, reason)
	}
	if !perms.Has(need) && !perms.Has(discord.PermissionAdministrator) {
		return discord.NewForbidden(op, reason)
	}
	return nil
}

// channel resolves a channel id to a 404-shaped error on miss.
func (f *Facade) channel(op string, id discord.Snowflake) (*discord.Channel, error) {
	ch, err := f.state.Channel(id)
	if err != nil {
		return nil, discord.NewNotFound(op, "unknown channel", discord.ErrUnknownChannel)
	}
	return ch, nil
}

// guild resolves a guild id to a 404-shaped error on miss.
func (f *Facade) guild(op string, id discord.Snowflake) (*discord.Guild, error) {
	g, err := f.state.Guild(id)
	if err != nil {
		return nil, discord.NewNotFound(op, "unknown guild", discord.ErrUnknownGuild)
	}
	return g, nil
}

// selfActor returns the connected user as the acting entity, as a member
// when the channel belongs to a guild the user has joined.
func (f *Facade) selfActor(ch *discord.Channel) discord.Actor {
	self := f.state.SelfUser()
	if !ch.GuildID.IsZero() {
		if m, err := f.state.Member(ch.GuildID, self.ID); err == nil {
			return discord.MemberActor(m)
		}
	}
	return discord.UserActor(self)
}
