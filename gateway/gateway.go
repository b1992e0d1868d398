// Package gateway stands in for the realtime event stream. Instead of a
// socket, Dispatch marshals each synthesized payload to its wire form and
// replays it through the matching parse entry point of the client cache, so
// the library's normal "event received" path runs unmodified. Every
// dispatched event is also recorded in a FIFO log for test assertions.
package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/state"
)

// Event is one dispatched gateway event as recorded in the log.
type Event struct {
	Type string
	Data json.RawMessage
}

// Gateway is the fake stream transport bound to one client cache.
type Gateway struct {
	state  *state.State
	logger *slog.Logger

	mu     sync.Mutex
	events []Event
	closed bool
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New creates a gateway bound to the given cache.
func New(st *state.State, opts ...Option) *Gateway {
	g := &Gateway{state: st}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Dispatch marshals payload to its wire shape and replays it through the
// parse entry point matching the event type.
func (g *Gateway) Dispatch(event string, payload any) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return discord.ErrClosed
	}
	g.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mockcord: marshal %s payload: %w", event, err)
	}

	var parse func(json.RawMessage) error
	switch event {
	case discord.EventGuildCreate:
		parse = g.state.ParseGuildCreate
	case discord.EventGuildUpdate:
		parse = g.state.ParseGuildUpdate
	case discord.EventGuildRoleCreate:
		parse = g.state.ParseGuildRoleCreate
	case discord.EventGuildRoleUpdate:
		parse = g.state.ParseGuildRoleUpdate
	case discord.EventGuildRoleDelete:
		parse = g.state.ParseGuildRoleDelete
	case discord.EventChannelCreate:
		parse = g.state.ParseChannelCreate
	case discord.EventChannelUpdate:
		parse = g.state.ParseChannelUpdate
	case discord.EventChannelDelete:
		parse = g.state.ParseChannelDelete
	case discord.EventChannelPinsUpdate:
		parse = g.state.ParseChannelPinsUpdate
	case discord.EventGuildMemberAdd:
		parse = g.state.ParseGuildMemberAdd
	case discord.EventGuildMemberUpdate:
		parse = g.state.ParseGuildMemberUpdate
	case discord.EventGuildMemberRemove:
		parse = g.state.ParseGuildMemberRemove
	case discord.EventMessageCreate:
		parse = g.state.ParseMessageCreate
	case discord.EventMessageUpdate:
		parse = g.state.ParseMessageUpdate
	case discord.EventMessageDelete:
		parse = g.state.ParseMessageDelete
	case discord.EventReactionAdd:
		parse = g.state.ParseReactionAdd
	case discord.EventReactionRemove:
		parse = g.state.ParseReactionRemove
	case discord.EventReactionRemoveAll:
		parse = g.state.ParseReactionRemoveAll
	default:
		return fmt.Errorf("mockcord: no parser for event %q", event)
	}

	if err := parse(data); err != nil {
		return err
	}

	g.mu.Lock()
	g.events = append(g.events, Event{Type: event, Data: data})
	g.mu.Unlock()

	g.logger.Debug("event dispatched", "event", event)
	return nil
}

// Next pops the oldest recorded event, or ok=false when the log is empty.
func (g *Gateway) Next() (Event, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.events) == 0 {
		return Event{}, false
	}
	ev := g.events[0]
	g.events = g.events[1:]
	return ev, true
}

// Peek returns the oldest recorded event without removing it.
func (g *Gateway) Peek() (Event, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.events) == 0 {
		return Event{}, false
	}
	return g.events[0], true
}

// Len returns the number of recorded events.
func (g *Gateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.events)
}

// Drain removes and returns all recorded events.
func (g *Gateway) Drain() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.events
	g.events = nil
	return out
}

// Close detaches the gateway; further dispatches fail with ErrClosed.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
}
