package core

import (
	"encoding/json"
	"testing"
)

func TestCredentialPresenceFlags(t *testing.T) {
	cases := []struct {
		name       string
		credential Credential
		present    bool
		partial    bool
	}{
		{"both tokens", Credential{AccessToken: "a", RefreshToken: "r"}, true, false},
		{"empty", Credential{}, false, false},
		{"access only", Credential{AccessToken: "a"}, false, true},
		{"refresh only", Credential{RefreshToken: "r"}, false, true},
		{"whitespace only", Credential{AccessToken: "  ", RefreshToken: "r"}, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.credential.Present(); got != tc.present {
				t.Fatalf("Present() = %v, want %v", got, tc.present)
			}
			if got := tc.credential.Partial(); got != tc.partial {
				t.Fatalf("Partial() = %v, want %v", got, tc.partial)
			}
		})
	}
}

func TestCredentialNormalizeDefaultsTokenType(t *testing.T) {
	normalized := Credential{AccessToken: " a ", RefreshToken: " r "}.Normalize()
	if normalized.AccessToken != "a" || normalized.RefreshToken != "r" {
		t.Fatalf("expected trimmed tokens, got %+v", normalized)
	}
	if normalized.TokenType != DefaultTokenType {
		t.Fatalf("expected default token type, got %q", normalized.TokenType)
	}

	kept := Credential{AccessToken: "a", RefreshToken: "r", TokenType: "MAC"}.Normalize()
	if kept.TokenType != "MAC" {
		t.Fatalf("explicit token type must survive, got %q", kept.TokenType)
	}
}

func TestDecodeDataTypedPayload(t *testing.T) {
	payload, err := json.Marshal(User{ID: "usr_1", Email: "driver@example.com"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	user, err := DecodeData[User](Envelope{Success: true, Data: payload})
	if err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if user.ID != "usr_1" {
		t.Fatalf("unexpected user: %#v", user)
	}

	if _, err := DecodeData[User](Envelope{Success: true}); err == nil {
		t.Fatalf("expected error for missing payload")
	}
	if _, err := DecodeData[User](Envelope{Success: false, Error: &EnvelopeError{Code: ErrorCodeUnauthorized}}); err == nil {
		t.Fatalf("expected error for error envelope")
	}
}

func TestServerInfoBaseURL(t *testing.T) {
	plain := ServerInfo{Host: "garage.local", Port: 7878}
	if got := plain.BaseURL(); got != "http://garage.local:7878" {
		t.Fatalf("unexpected base url %q", got)
	}
	secured := ServerInfo{Host: "garage.local", Port: 443, TLS: true}
	if got := secured.BaseURL(); got != "https://garage.local:443" {
		t.Fatalf("unexpected base url %q", got)
	}
}

func TestEnvelopeJSONShape(t *testing.T) {
	env := Envelope{Success: false, Error: &EnvelopeError{Code: "SPOT_TAKEN", Message: "taken"}}
	encoded, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	want := `{"success":false,"error":{"code":"SPOT_TAKEN","message":"taken"}}`
	if string(encoded) != want {
		t.Fatalf("unexpected wire shape %s", encoded)
	}
}
