package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// ProtocolVersion is the client/server compatibility marker exchanged
	// during the handshake and advertised over mDNS.
	ProtocolVersion = "1.0.0"

	DefaultServerPort = 7878

	MDNSServiceType = "_parkhub._tcp"
)

const DefaultTokenType = "Bearer"

// Credential is the bearer credential pair issued by the server. A
// credential is either fully present (both tokens set) or absent; partial
// states never reach the token store.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Present reports whether both tokens are set.
func (c Credential) Present() bool {
	return strings.TrimSpace(c.AccessToken) != "" && strings.TrimSpace(c.RefreshToken) != ""
}

// Partial reports whether exactly one of the two tokens is set. Partial
// credentials are rejected by the token store.
func (c Credential) Partial() bool {
	hasAccess := strings.TrimSpace(c.AccessToken) != ""
	hasRefresh := strings.TrimSpace(c.RefreshToken) != ""
	return hasAccess != hasRefresh
}

func (c Credential) Normalize() Credential {
	out := Credential{
		AccessToken:  strings.TrimSpace(c.AccessToken),
		RefreshToken: strings.TrimSpace(c.RefreshToken),
		TokenType:    strings.TrimSpace(c.TokenType),
		ExpiresIn:    c.ExpiresIn,
	}
	if out.TokenType == "" {
		out.TokenType = DefaultTokenType
	}
	return out
}

// Envelope is the uniform result shape every pipeline operation returns.
// Exactly one of Data/Error is meaningful, gated by Success.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *EnvelopeError  `json:"error,omitempty"`
}

type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeData unmarshals the envelope payload into a typed value. It fails
// on error envelopes and on success envelopes without a payload.
func DecodeData[T any](env Envelope) (T, error) {
	var out T
	if !env.Success {
		code := ErrorCodeInternal
		message := "request failed"
		if env.Error != nil {
			code = env.Error.Code
			message = env.Error.Message
		}
		return out, fmt.Errorf("core: error envelope %s: %s", code, message)
	}
	if len(env.Data) == 0 {
		return out, fmt.Errorf("core: envelope has no data payload")
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("core: decode envelope data: %w", err)
	}
	return out, nil
}

// ServerInfo describes a ParkHub server discovered on the local network or
// configured manually.
type ServerInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Host            string `json:"host"`
	Port            int    `json:"port"`
	TLS             bool   `json:"tls"`
}

// BaseURL renders the scheme://host:port root for the server.
func (s ServerInfo) BaseURL() string {
	scheme := "http"
	if s.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, s.Host, s.Port)
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginResult is the payload of a successful login or register envelope.
type LoginResult struct {
	User   User       `json:"user"`
	Tokens Credential `json:"tokens"`
}

type HandshakeRequest struct {
	ClientVersion   string `json:"client_version"`
	ProtocolVersion string `json:"protocol_version"`
}

type HandshakeResponse struct {
	ServerName             string `json:"server_name"`
	ServerVersion          string `json:"server_version"`
	ProtocolVersion        string `json:"protocol_version"`
	RequiresAuth           bool   `json:"requires_auth"`
	CertificateFingerprint string `json:"certificate_fingerprint"`
}

type ServerStatus struct {
	UptimeSeconds    uint64 `json:"uptime_seconds"`
	ConnectedClients uint32 `json:"connected_clients"`
	TotalUsers       uint32 `json:"total_users"`
	TotalBookings    uint32 `json:"total_bookings"`
}
