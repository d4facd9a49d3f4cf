package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-lsbx/core"
	"github.com/goliatone/go-lsbx/transport"
	glog "github.com/goliatone/go-logger/glog"
)

const tokenCacheKeyPrefix = "lsbx_access_token_"

// Doer executes an HTTP exchange against the auth server.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (*transport.Envelope, error)
}

// Manager holds the client-credential access token for a single set of
// credentials. Tokens are renewed reactively: callers get the cached
// token until it expires or Invalidate is called, there is no
// background refresh.
type Manager struct {
	config core.Config
	cache  core.Cache
	client Doer
	logger core.Logger

	mu    sync.Mutex
	token string
}

type Option func(*Manager)

func WithCache(cache core.Cache) Option {
	return func(m *Manager) {
		if cache != nil {
			m.cache = cache
		}
	}
}

func WithDoer(client Doer) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

func WithLogger(logger core.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewManager(config core.Config, options ...Option) *Manager {
	manager := &Manager{config: config}
	for _, option := range options {
		option(manager)
	}
	if manager.client == nil {
		manager.client = transport.NewAdapter(nil)
	}
	manager.logger = glog.Ensure(manager.logger)
	return manager
}

// CacheKey returns the persistent cache key for this manager's
// credentials. Hashing keeps the client ID out of cache file names and
// table rows.
func (m *Manager) CacheKey() string {
	sum := sha256.Sum256([]byte(m.config.ClientID))
	return tokenCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Token returns a valid access token, fetching one from the auth
// server when neither the in-process copy nor the cache has it. Only
// one exchange is in flight at a time.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return m.token, nil
	}

	if m.cache != nil {
		cached, ok, err := m.cache.Get(ctx, m.CacheKey())
		if err != nil {
			m.logger.Warn("token cache read failed", "error", err)
		} else if ok && cached != "" {
			m.token = cached
			return cached, nil
		}
	}

	token, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	if m.cache != nil {
		if err := m.cache.Set(ctx, m.CacheKey(), token, core.TokenCacheTTL); err != nil {
			m.logger.Warn("token cache write failed", "error", err)
		}
	}
	return token, nil
}

// Invalidate drops the in-process token and the cached copy. The next
// Token call performs a fresh exchange.
func (m *Manager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	if m.cache == nil {
		return nil
	}
	return m.cache.Delete(ctx, m.CacheKey())
}

func (m *Manager) exchange(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.config.ClientID)
	form.Set("client_secret", m.config.ClientSecret)

	endpoint := strings.TrimRight(m.config.AuthURL, "/") + "/oauth2/token"

	envelope, err := m.client.Do(ctx, transport.Request{
		Method: "POST",
		URL:    endpoint,
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		},
		Body:    []byte(form.Encode()),
		Timeout: m.config.RequestTimeout(),
	})
	if err != nil {
		return "", core.NewTokenExchangeError(err.Error())
	}

	data := envelope.Data()
	if !envelope.IsSuccessful() {
		reason := upstreamReason(data)
		m.logger.Warn("token exchange rejected",
			"status", envelope.StatusCode,
			"reason", reason,
		)
		return "", core.NewTokenExchangeError(reason)
	}

	token, _ := data["access_token"].(string)
	if token == "" {
		return "", core.NewTokenExchangeError("response did not include an access token")
	}

	m.logger.Debug("token exchange succeeded")
	return token, nil
}

func upstreamReason(data map[string]any) string {
	for _, key := range []string{"error_description", "message", "error"} {
		if reason, ok := data[key].(string); ok && reason != "" {
			return reason
		}
	}
	return ""
}
