/*
Package client provides debmagic's functionality as a library through a Go
API.

A Client builds Debian source packages inside a build driver (directly on
the host or in a container) and lets other processes attach interactive
shells to a running build.
*/
package client

import (
	"os"
	"time"

	"github.com/debmagic/debmagic/internal/driver"
	"github.com/debmagic/debmagic/internal/driver/docker"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/terminal"
)

// DefaultAttachPollInterval is how often a finished build checks for
// attached shells.
const DefaultAttachPollInterval = 100 * time.Millisecond

// Client is an orchestration object, it contains all parameters needed to
// build packages and attach to builds.
// All settings on this object should be changed through Option functions.
type Client struct {
	logger        logging.Logger
	terminal      terminal.Terminal
	docker        docker.Client
	driverFactory driver.Factory
	driverOptions driver.Options

	attachPollInterval time.Duration
	attachMaxWait      time.Duration
}

// Option is a type of function that mutate settings on the client.
// Values in these functions are set through currying.
type Option func(c *Client)

// WithLogger supply your own logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTerminal supply the streams builds and shells talk to the user through.
func WithTerminal(t terminal.Terminal) Option {
	return func(c *Client) {
		c.terminal = t
	}
}

// WithDockerClient supply your own docker client.
func WithDockerClient(d docker.Client) Option {
	return func(c *Client) {
		c.docker = d
	}
}

// WithDriverFactory supply your own driver factory. It takes precedence over
// WithDockerClient and WithDriverOptions.
func WithDriverFactory(f driver.Factory) Option {
	return func(c *Client) {
		c.driverFactory = f
	}
}

// WithDriverOptions configures the drivers created by the default factory.
func WithDriverOptions(opts driver.Options) Option {
	return func(c *Client) {
		c.driverOptions = opts
	}
}

// WithAttachPollInterval sets how often a finished build checks whether
// shells are still attached.
func WithAttachPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.attachPollInterval = d
	}
}

// WithAttachMaxWait bounds how long a finished build waits for attached
// shells. Zero waits indefinitely.
func WithAttachMaxWait(d time.Duration) Option {
	return func(c *Client) {
		c.attachMaxWait = d
	}
}

// NewClient allocates and returns a Client configured with the specified options.
func NewClient(opts ...Option) (*Client, error) {
	client := &Client{
		attachPollInterval: DefaultAttachPollInterval,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = logging.NewLogWithWriters(os.Stdout, os.Stderr)
	}

	if client.terminal == nil {
		client.terminal = terminal.Std()
	}

	if client.attachPollInterval <= 0 {
		client.attachPollInterval = DefaultAttachPollInterval
	}

	if client.driverFactory == nil {
		driverOpts := client.driverOptions
		if driverOpts.Bare.Logger == nil {
			driverOpts.Bare.Logger = client.logger
		}
		if driverOpts.Bare.Terminal == nil {
			driverOpts.Bare.Terminal = client.terminal
		}
		if driverOpts.Docker.Logger == nil {
			driverOpts.Docker.Logger = client.logger
		}
		if driverOpts.Docker.Terminal == nil {
			driverOpts.Docker.Terminal = client.terminal
		}
		if driverOpts.DockerClient == nil {
			driverOpts.DockerClient = client.docker
		}
		client.driverFactory = driver.NewFactory(driverOpts)
	}

	return client, nil
}
