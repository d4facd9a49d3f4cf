package lsbx

import (
	"testing"
	"time"

	"github.com/goliatone/go-lsbx/cache"
	"github.com/goliatone/go-lsbx/core"
)

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New("", "", WithCache(cache.NewMemory())); err == nil {
		t.Fatalf("expected configuration error")
	} else if !core.IsConfiguration(err) {
		t.Fatalf("expected configuration classification, got %v", err)
	}
}

func TestNew_DefaultsToSandbox(t *testing.T) {
	client, err := New("id", "secret", WithCache(cache.NewMemory()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !client.IsSandbox() {
		t.Fatalf("expected sandbox default")
	}
	if client.Config().BaseURL != core.SandboxBaseURL {
		t.Fatalf("unexpected base url %q", client.Config().BaseURL)
	}
	if client.Config().AuthURL != core.SandboxAuthURL {
		t.Fatalf("unexpected auth url %q", client.Config().AuthURL)
	}
}

func TestProduction_SelectsProductionURLs(t *testing.T) {
	client, err := Production("id", "secret", WithCache(cache.NewMemory()))
	if err != nil {
		t.Fatalf("production: %v", err)
	}
	if client.IsSandbox() {
		t.Fatalf("expected production environment")
	}
	if client.Config().BaseURL != core.ProductionBaseURL {
		t.Fatalf("unexpected base url %q", client.Config().BaseURL)
	}
}

func TestNew_OptionOverrides(t *testing.T) {
	client, err := New("id", "secret",
		WithCache(cache.NewMemory()),
		WithBaseURL("https://stub.example.com/"),
		WithTimeout(45*time.Second),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if client.Config().BaseURL != "https://stub.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", client.Config().BaseURL)
	}
	if client.Config().RequestTimeout() != 45*time.Second {
		t.Fatalf("unexpected timeout %v", client.Config().RequestTimeout())
	}
}

func TestNewWithConfig(t *testing.T) {
	config := core.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Sandbox:      false,
	}
	client, err := NewWithConfig(config, WithCache(cache.NewMemory()))
	if err != nil {
		t.Fatalf("new with config: %v", err)
	}
	if client.Config().BaseURL != core.ProductionBaseURL {
		t.Fatalf("expected normalization to fill urls, got %q", client.Config().BaseURL)
	}
}

func TestClient_ResourceAccessors(t *testing.T) {
	client, err := New("id", "secret", WithCache(cache.NewMemory()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if client.Customers() == nil || client.Accounts() == nil || client.Entities() == nil ||
		client.Transfers() == nil || client.Webhooks() == nil {
		t.Fatalf("expected all resource accessors to be wired")
	}
}
