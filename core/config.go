package core

import (
	"strings"
	"time"
)

const (
	SandboxBaseURL    = "https://lsbxsandboxapi.com"
	SandboxAuthURL    = "https://auth.lsbxsandboxapi.com"
	ProductionBaseURL = "https://lsbxapi.com"
	ProductionAuthURL = "https://auth.lsbxapi.com"
)

// TokenCacheTTL is deliberately shorter than the 900s lifetime the auth
// server grants, so cached tokens expire locally before they expire upstream.
const TokenCacheTTL = 800 * time.Second

const DefaultTimeoutSeconds = 300

type Config struct {
	ClientID       string `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret   string `koanf:"client_secret" mapstructure:"client_secret"`
	Sandbox        bool   `koanf:"sandbox" mapstructure:"sandbox"`
	BaseURL        string `koanf:"base_url" mapstructure:"base_url"`
	AuthURL        string `koanf:"auth_url" mapstructure:"auth_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
	CacheDir       string `koanf:"cache_dir" mapstructure:"cache_dir"`
}

func DefaultConfig() Config {
	return Config{
		Sandbox:        true,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Normalize fills environment-dependent URLs and trims trailing slashes from
// overrides. It returns a copy; Config values are never mutated after client
// construction.
func (c Config) Normalize() Config {
	out := c
	out.ClientID = strings.TrimSpace(c.ClientID)
	out.ClientSecret = strings.TrimSpace(c.ClientSecret)
	out.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	out.AuthURL = strings.TrimRight(strings.TrimSpace(c.AuthURL), "/")
	if out.BaseURL == "" {
		if out.Sandbox {
			out.BaseURL = SandboxBaseURL
		} else {
			out.BaseURL = ProductionBaseURL
		}
	}
	if out.AuthURL == "" {
		if out.Sandbox {
			out.AuthURL = SandboxAuthURL
		} else {
			out.AuthURL = ProductionAuthURL
		}
	}
	if out.TimeoutSeconds <= 0 {
		out.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return NewConfigurationError("client id and client secret are required")
	}
	return nil
}

func (c Config) RequestTimeout() time.Duration {
	seconds := c.TimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}
