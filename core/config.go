package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultLoginPath     = "/api/v1/auth/login"
	DefaultRegisterPath  = "/api/v1/auth/register"
	DefaultRefreshPath   = "/api/v1/auth/refresh"
	DefaultHandshakePath = "/handshake"
	DefaultStatusPath    = "/status"
	DefaultUserPath      = "/api/v1/users/me"
)

type Config struct {
	ServiceName          string        `koanf:"service_name" mapstructure:"service_name"`
	BaseURL              string        `koanf:"base_url" mapstructure:"base_url"`
	LoginPath            string        `koanf:"login_path" mapstructure:"login_path"`
	RegisterPath         string        `koanf:"register_path" mapstructure:"register_path"`
	RefreshPath          string        `koanf:"refresh_path" mapstructure:"refresh_path"`
	HandshakePath        string        `koanf:"handshake_path" mapstructure:"handshake_path"`
	RequestTimeout       time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	MaxResponseBodyBytes int64         `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:   "parkhub-client",
		LoginPath:     DefaultLoginPath,
		RegisterPath:  DefaultRegisterPath,
		RefreshPath:   DefaultRefreshPath,
		HandshakePath: DefaultHandshakePath,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("core: base_url is not a valid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("core: base_url scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("core: base_url host is required")
	}
	return nil
}
