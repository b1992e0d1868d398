package mockcord

import (
	"fmt"
	"log/slog"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
	"github.com/prilive-com/mockcord/gateway"
	"github.com/prilive-com/mockcord/request"
	"github.com/prilive-com/mockcord/state"
)

// Client is one configured fake environment: a client cache, the gateway
// feeding it, the backend driving the gateway and the transport facade the
// code under test calls. Each Configure call builds a fresh environment, so
// independent tests never share state.
type Client struct {
	self    *discord.User
	logger  *slog.Logger
	state   *state.State
	gateway *gateway.Gateway
	backend *backend.Backend
	facade  *request.Facade
}

type clientConfig struct {
	self   *discord.User
	logger *slog.Logger
	dummy  bool

	seedGuilds   int
	seedChannels int
	seedMembers  int
}

// Option configures NewClient and Configure.
type Option func(*clientConfig)

// selfIDs mints default self-user ids. The generator is shared across
// Configure calls and uses a worker id the backend never does, so default
// self users stay distinct from each other and from backend-minted ids even
// within the same millisecond.
var selfIDs = discord.NewGenerator(1023)

// WithSelfUser sets the connected user. The default is MockUser#0001.
func WithSelfUser(u *discord.User) Option {
	return func(c *clientConfig) {
		c.self = u
	}
}

// WithLogger sets a custom logger for every component of the environment.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithDummyClient lets Configure build a throwaway client when nil is
// passed, for tests that only exercise the backend.
func WithDummyClient() Option {
	return func(c *clientConfig) {
		c.dummy = true
	}
}

// WithSeedGuilds pre-creates n guilds owned by the connected user.
func WithSeedGuilds(n int) Option {
	return func(c *clientConfig) {
		c.seedGuilds = n
	}
}

// WithSeedChannels pre-creates n text channels in each seeded guild.
func WithSeedChannels(n int) Option {
	return func(c *clientConfig) {
		c.seedChannels = n
	}
}

// WithSeedMembers pre-creates n members in each seeded guild, in addition
// to the connected user.
func WithSeedMembers(n int) Option {
	return func(c *clientConfig) {
		c.seedMembers = n
	}
}

// NewClient creates an unconfigured client shell. Configure must be called
// before the accessors are usable.
func NewClient(opts ...Option) *Client {
	cfg := applyOptions(opts)
	return &Client{self: cfg.self, logger: cfg.logger}
}

func applyOptions(opts []Option) clientConfig {
	cfg := clientConfig{
		seedGuilds:   1,
		seedChannels: 1,
		seedMembers:  1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.self == nil {
		cfg.self = &discord.User{ID: selfIDs.Next(), Username: "MockUser", Discriminator: "0001"}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// Configure binds a fresh fake environment to the client: new cache, new
// gateway, new backend, new transport facade, plus the seeded guilds,
// channels and members. Reconfiguring closes the previous facade and
// gateway so references held from before fail with ErrNotConfigured instead
// of mutating the new environment. A nil client is rejected unless
// WithDummyClient is given.
func Configure(c *Client, opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)
	if c == nil {
		if !cfg.dummy {
			return nil, fmt.Errorf("mockcord: Configure: %w", discord.NewValidationError("client", "nil client requires WithDummyClient"))
		}
		c = &Client{}
	}
	if c.facade != nil {
		c.facade.Close()
	}
	if c.gateway != nil {
		c.gateway.Close()
	}
	if c.self == nil {
		c.self = cfg.self
	}
	if c.logger == nil {
		c.logger = cfg.logger
	}

	c.state = state.New(c.self, state.WithLogger(c.logger))
	c.gateway = gateway.New(c.state, gateway.WithLogger(c.logger))
	c.backend = backend.New(c.state, c.gateway, backend.WithLogger(c.logger))
	c.facade = request.New(c.backend, request.WithLogger(c.logger))

	if err := seed(c, cfg); err != nil {
		return nil, err
	}
	// Seeding is setup noise, not test traffic.
	c.gateway.Drain()
	return c, nil
}

func seed(c *Client, cfg clientConfig) error {
	for gi := 0; gi < cfg.seedGuilds; gi++ {
		g, err := c.backend.MakeGuild(fmt.Sprintf("Test Guild %d", gi), backend.OwnedBySelf())
		if err != nil {
			return err
		}
		for ci := 0; ci < cfg.seedChannels; ci++ {
			if _, err := c.backend.MakeTextChannel(g, fmt.Sprintf("text-channel-%d", ci)); err != nil {
				return err
			}
		}
		if _, err := c.backend.MakeMember(c.self, g); err != nil {
			return err
		}
		for mi := 0; mi < cfg.seedMembers; mi++ {
			u := c.backend.MakeUser(fmt.Sprintf("TestUser%d", mi), fmt.Sprintf("%04d", mi+1))
			if _, err := c.backend.MakeMember(u, g); err != nil {
				return err
			}
		}
	}
	return nil
}

// SelfUser returns the connected user.
func (c *Client) SelfUser() *discord.User { return c.self }

// State returns the client cache of the current environment.
func (c *Client) State() *state.State { return c.state }

// Gateway returns the fake event stream of the current environment.
func (c *Client) Gateway() *gateway.Gateway { return c.gateway }

// Backend returns the fake server state of the current environment.
func (c *Client) Backend() *backend.Backend { return c.backend }

// Request returns the fake transport facade of the current environment.
func (c *Client) Request() *request.Facade { return c.facade }
