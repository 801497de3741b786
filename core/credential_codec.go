package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	CredentialPayloadFormatJSONV1 = "credential_json"
	CredentialPayloadVersionV1    = 1
)

// CredentialCodec serializes a credential for the durable key-value
// collaborator. The issue time rides along so expiry can be evaluated
// after a process restart.
type CredentialCodec interface {
	Format() string
	Version() int
	Encode(credential Credential, issuedAt time.Time) (string, error)
	Decode(payload string) (Credential, time.Time, error)
}

type JSONCredentialCodec struct{}

func (JSONCredentialCodec) Format() string {
	return CredentialPayloadFormatJSONV1
}

func (JSONCredentialCodec) Version() int {
	return CredentialPayloadVersionV1
}

type jsonCredentialPayload struct {
	Format       string     `json:"format"`
	Version      int        `json:"version"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresIn    int64      `json:"expires_in,omitempty"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
}

func (c JSONCredentialCodec) Encode(credential Credential, issuedAt time.Time) (string, error) {
	normalized := credential.Normalize()
	payload := jsonCredentialPayload{
		Format:       c.Format(),
		Version:      c.Version(),
		AccessToken:  normalized.AccessToken,
		RefreshToken: normalized.RefreshToken,
		TokenType:    normalized.TokenType,
		ExpiresIn:    normalized.ExpiresIn,
	}
	if !issuedAt.IsZero() {
		utc := issuedAt.UTC()
		payload.IssuedAt = &utc
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("core: encode credential payload: %w", err)
	}
	return string(encoded), nil
}

func (c JSONCredentialCodec) Decode(payload string) (Credential, time.Time, error) {
	if strings.TrimSpace(payload) == "" {
		return Credential{}, time.Time{}, fmt.Errorf("core: credential payload is empty")
	}
	decoded := jsonCredentialPayload{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return Credential{}, time.Time{}, fmt.Errorf("core: decode credential payload: %w", err)
	}
	if decoded.Format != "" && decoded.Format != c.Format() {
		return Credential{}, time.Time{}, fmt.Errorf("core: unsupported credential payload format %q", decoded.Format)
	}
	credential := Credential{
		AccessToken:  strings.TrimSpace(decoded.AccessToken),
		RefreshToken: strings.TrimSpace(decoded.RefreshToken),
		TokenType:    strings.TrimSpace(decoded.TokenType),
		ExpiresIn:    decoded.ExpiresIn,
	}
	issuedAt := time.Time{}
	if decoded.IssuedAt != nil {
		issuedAt = decoded.IssuedAt.UTC()
	}
	return credential, issuedAt, nil
}

var _ CredentialCodec = JSONCredentialCodec{}
