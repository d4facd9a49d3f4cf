// Package lsbx is a client for the LSBX banking API. It manages OAuth2
// client-credential tokens, dispatches authenticated REST requests, and
// exposes typed facades for customers, accounts, entities, transfers,
// and webhook subscriptions.
package lsbx

import (
	"context"

	"github.com/goliatone/go-lsbx/auth"
	"github.com/goliatone/go-lsbx/cache"
	"github.com/goliatone/go-lsbx/core"
	"github.com/goliatone/go-lsbx/transport"
	glog "github.com/goliatone/go-logger/glog"
)

// Client is the entry point for the SDK. Construct one per set of
// credentials; it is safe for concurrent use.
type Client struct {
	config     core.Config
	cache      core.Cache
	httpClient transport.HTTPDoer
	adapter    *transport.Adapter
	tokens     *auth.Manager
	logger     core.Logger
	observer   core.RequestObserver

	customers *CustomersResource
	accounts  *AccountsResource
	entities  *EntitiesResource
	transfers *TransfersResource
	webhooks  *WebhooksResource
}

// New builds a Client for the given credentials. It defaults to the
// sandbox environment with a file-backed token cache.
func New(clientID, clientSecret string, options ...Option) (*Client, error) {
	client := &Client{config: core.DefaultConfig()}
	client.config.ClientID = clientID
	client.config.ClientSecret = clientSecret

	for _, option := range options {
		option(client)
	}
	return finishClient(client)
}

// NewWithConfig builds a Client from a fully populated configuration,
// typically one loaded through core.ConfigProvider.
func NewWithConfig(config core.Config, options ...Option) (*Client, error) {
	client := &Client{config: config}
	for _, option := range options {
		option(client)
	}
	return finishClient(client)
}

// NewFromEnv builds a Client from LSBX_* environment variables layered
// over the defaults.
func NewFromEnv(ctx context.Context, options ...Option) (*Client, error) {
	provider := core.NewCfgxConfigProvider(core.EnvRawConfigLoader{})
	config, err := provider.Load(ctx, core.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config, options...)
}

// Sandbox is shorthand for New with the sandbox environment selected.
func Sandbox(clientID, clientSecret string, options ...Option) (*Client, error) {
	return New(clientID, clientSecret, append([]Option{WithSandbox(true)}, options...)...)
}

// Production is shorthand for New with the production environment
// selected.
func Production(clientID, clientSecret string, options ...Option) (*Client, error) {
	return New(clientID, clientSecret, append([]Option{WithSandbox(false)}, options...)...)
}

func finishClient(client *Client) (*Client, error) {
	client.config = client.config.Normalize()
	if err := client.config.Validate(); err != nil {
		return nil, err
	}

	client.logger = glog.Ensure(client.logger)

	if client.cache == nil {
		fileCache, err := cache.NewFile(client.config.CacheDir)
		if err != nil {
			return nil, err
		}
		client.cache = fileCache
	}

	client.adapter = transport.NewAdapter(client.httpClient)
	client.tokens = auth.NewManager(client.config,
		auth.WithDoer(client.adapter),
		auth.WithCache(client.cache),
		auth.WithLogger(client.logger),
	)

	client.customers = &CustomersResource{client: client}
	client.accounts = &AccountsResource{client: client}
	client.entities = &EntitiesResource{client: client}
	client.transfers = &TransfersResource{client: client}
	client.webhooks = &WebhooksResource{client: client}
	return client, nil
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() core.Config { return c.config }

// IsSandbox reports whether the client targets the sandbox
// environment.
func (c *Client) IsSandbox() bool { return c.config.Sandbox }

// AccessToken returns the current access token, performing the
// client-credentials exchange when nothing usable is cached.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// ClearAccessToken drops the in-process and cached token so the next
// request authenticates from scratch.
func (c *Client) ClearAccessToken(ctx context.Context) error {
	return c.tokens.Invalidate(ctx)
}

func (c *Client) Customers() *CustomersResource { return c.customers }
func (c *Client) Accounts() *AccountsResource   { return c.accounts }
func (c *Client) Entities() *EntitiesResource   { return c.entities }
func (c *Client) Transfers() *TransfersResource { return c.transfers }
func (c *Client) Webhooks() *WebhooksResource   { return c.webhooks }
