package lsbx

import (
	"time"

	"github.com/goliatone/go-lsbx/core"
	"github.com/goliatone/go-lsbx/transport"
)

// Option configures a Client during construction.
type Option func(*Client)

// WithSandbox selects the sandbox or production environment. Clients
// default to sandbox.
func WithSandbox(sandbox bool) Option {
	return func(c *Client) {
		c.config.Sandbox = sandbox
	}
}

// WithBaseURL overrides the API base URL, for example to point at a
// local stub during tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.config.BaseURL = baseURL
	}
}

// WithAuthURL overrides the token endpoint base URL.
func WithAuthURL(authURL string) Option {
	return func(c *Client) {
		c.config.AuthURL = authURL
	}
}

// WithTimeout sets the per-request timeout. Values are rounded down to
// whole seconds; non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.config.TimeoutSeconds = int(timeout / time.Second)
		}
	}
}

// WithCacheDir sets the directory the default file token cache writes
// to. Ignored when WithCache supplies a cache.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.config.CacheDir = dir
	}
}

// WithCache replaces the token cache. Pass any core.Cache: the bundled
// memory, file, or SQL stores, or your own.
func WithCache(store core.Cache) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client for both API and
// token requests.
func WithHTTPClient(client transport.HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a structured logger. Without one the client stays
// silent.
func WithLogger(logger core.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a hook that receives a record of every API
// exchange. The observer never affects request handling.
func WithObserver(observer core.RequestObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithConfig replaces the whole configuration. Options applied after
// it still override individual fields.
func WithConfig(config core.Config) Option {
	return func(c *Client) {
		c.config = config
	}
}
