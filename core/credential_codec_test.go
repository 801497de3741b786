package core

import (
	"strings"
	"testing"
	"time"
)

func TestJSONCredentialCodec_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)

	codec := JSONCredentialCodec{}
	encoded, err := codec.Encode(Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    3600,
	}, issuedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, decodedIssuedAt, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.AccessToken != "access-1" {
		t.Fatalf("expected access token roundtrip")
	}
	if decoded.RefreshToken != "refresh-1" {
		t.Fatalf("expected refresh token roundtrip")
	}
	if decoded.TokenType != DefaultTokenType {
		t.Fatalf("expected default token type, got %q", decoded.TokenType)
	}
	if decoded.ExpiresIn != 3600 {
		t.Fatalf("expected expires_in roundtrip, got %d", decoded.ExpiresIn)
	}
	if !decodedIssuedAt.Equal(issuedAt) {
		t.Fatalf("expected issued_at roundtrip, got %v", decodedIssuedAt)
	}
}

func TestJSONCredentialCodec_DecodeIsIdempotent(t *testing.T) {
	codec := JSONCredentialCodec{}
	encoded, err := codec.Encode(Credential{AccessToken: "a", RefreshToken: "r"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	first, firstIssued, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, secondIssued, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if first != second || !firstIssued.Equal(secondIssued) {
		t.Fatalf("decode must be stable: %#v vs %#v", first, second)
	}
}

func TestJSONCredentialCodec_RejectsBadPayloads(t *testing.T) {
	codec := JSONCredentialCodec{}

	if _, _, err := codec.Decode(""); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, _, err := codec.Decode("not-json"); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
	_, _, err := codec.Decode(`{"format":"other_format","access_token":"a","refresh_token":"r"}`)
	if err == nil || !strings.Contains(err.Error(), "format") {
		t.Fatalf("expected format rejection, got %v", err)
	}
}
