package core

import (
	"strings"
	"time"
)

const DefaultCredentialExpiringSoonWindow = 5 * time.Minute

// CredentialTokenState captures access/refresh lifecycle flags derived
// from a stored credential and its issue time.
type CredentialTokenState struct {
	ExpiresAt       *time.Time
	HasAccessToken  bool
	HasRefreshToken bool
	CanRefresh      bool
	IsExpired       bool
	IsExpiringSoon  bool
}

// ResolveCredentialTokenState evaluates expiry and refreshability flags.
// A credential with no issue time or no expires_in never reports expiry;
// the server's 401 remains the authoritative expiry signal either way.
func ResolveCredentialTokenState(now time.Time, credential Credential, issuedAt time.Time, expiringSoonWindow time.Duration) CredentialTokenState {
	if now.IsZero() {
		now = time.Now().UTC()
	} else {
		now = now.UTC()
	}
	if expiringSoonWindow <= 0 {
		expiringSoonWindow = DefaultCredentialExpiringSoonWindow
	}

	state := CredentialTokenState{
		HasAccessToken:  strings.TrimSpace(credential.AccessToken) != "",
		HasRefreshToken: strings.TrimSpace(credential.RefreshToken) != "",
	}
	state.CanRefresh = state.HasRefreshToken
	if credential.ExpiresIn <= 0 || issuedAt.IsZero() {
		return state
	}
	expiresAt := issuedAt.UTC().Add(time.Duration(credential.ExpiresIn) * time.Second)
	state.ExpiresAt = &expiresAt
	if !expiresAt.After(now) {
		state.IsExpired = true
		return state
	}
	state.IsExpiringSoon = !expiresAt.After(now.Add(expiringSoonWindow))
	return state
}
