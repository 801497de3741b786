package core

import (
	"context"
	"testing"
	"time"
)

func TestCfgxConfigProviderMergesDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(StaticRawConfigLoader(map[string]any{
		"base_url": "http://configured.local:7878",
	}))

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "http://configured.local:7878" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.LoginPath != DefaultLoginPath {
		t.Fatalf("defaults must fill unset keys, got %q", cfg.LoginPath)
	}
}

func TestCfgxConfigProviderAllowsIncompleteSource(t *testing.T) {
	provider := NewCfgxConfigProvider(nil)
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("an empty source must load cleanly: %v", err)
	}
	if cfg.BaseURL != "" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
}

func TestGoOptionsResolverPrecedence(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{
		BaseURL:     "http://configured.local:7878",
		LoginPath:   "/v2/login",
		RefreshPath: "/v2/refresh",
	}
	runtime := Config{
		BaseURL:        "http://runtime.local:7878",
		RequestTimeout: 15 * time.Second,
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.BaseURL != "http://runtime.local:7878" {
		t.Fatalf("runtime layer must win, got %q", resolved.BaseURL)
	}
	if resolved.LoginPath != "/v2/login" {
		t.Fatalf("config layer must beat defaults, got %q", resolved.LoginPath)
	}
	if resolved.RegisterPath != DefaultRegisterPath {
		t.Fatalf("defaults must fill gaps, got %q", resolved.RegisterPath)
	}
	if resolved.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", resolved.RequestTimeout)
	}
}

func TestGoOptionsResolverRejectsMissingBaseURL(t *testing.T) {
	if _, err := (GoOptionsResolver{}).Resolve(DefaultConfig(), Config{}, Config{}); err == nil {
		t.Fatalf("expected validation failure without base url")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.BaseURL = "https://park.example.com"
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation failure: %v", err)
	}

	cases := map[string]Config{
		"missing base url": {ServiceName: "x"},
		"bad scheme":       {ServiceName: "x", BaseURL: "ftp://host"},
		"missing host":     {ServiceName: "x", BaseURL: "http://"},
		"missing name":     {BaseURL: "http://host"},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation failure", name)
		}
	}
}
