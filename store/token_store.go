package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/parkhub/go-client/core"
)

const credentialStorageKey = "parkhub::credential::v1"

// credentialSnapshot is the cached read-side shape. Absence is cached too
// so a logged-out client does not hit the durable store on every request.
type credentialSnapshot struct {
	Credential core.Credential
	IssuedAt   time.Time
	Present    bool
}

// TokenStore persists the session credential in a durable key-value
// collaborator, with an optional read-through cache in front so steady
// state reads stay off the durable path.
type TokenStore struct {
	kv    core.KeyValueStore
	codec core.CredentialCodec
	cache repositorycache.CacheService
	now   func() time.Time
}

type TokenStoreOption func(*TokenStore)

// WithCredentialCodec overrides the payload codec used against the
// durable store.
func WithCredentialCodec(codec core.CredentialCodec) TokenStoreOption {
	return func(s *TokenStore) {
		if codec != nil {
			s.codec = codec
		}
	}
}

// WithCacheService installs a read-through cache over the durable store.
func WithCacheService(cache repositorycache.CacheService) TokenStoreOption {
	return func(s *TokenStore) {
		s.cache = cache
	}
}

// WithClock overrides the issue-time source, mostly for tests.
func WithClock(now func() time.Time) TokenStoreOption {
	return func(s *TokenStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenStore(kv core.KeyValueStore, opts ...TokenStoreOption) (*TokenStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("store: key-value store is required")
	}
	tokenStore := &TokenStore{
		kv:    kv,
		codec: core.JSONCredentialCodec{},
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(tokenStore)
	}
	return tokenStore, nil
}

func (s *TokenStore) Get(ctx context.Context) (core.Credential, bool, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return core.Credential{}, false, err
	}
	if !snapshot.Present {
		return core.Credential{}, false, nil
	}
	return snapshot.Credential, true, nil
}

// IssuedAt reports when the stored credential was persisted. Callers use
// it together with ExpiresIn to evaluate credential freshness.
func (s *TokenStore) IssuedAt(ctx context.Context) (time.Time, bool, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if !snapshot.Present {
		return time.Time{}, false, nil
	}
	return snapshot.IssuedAt, true, nil
}

func (s *TokenStore) snapshot(ctx context.Context) (credentialSnapshot, error) {
	if s == nil || s.kv == nil {
		return credentialSnapshot{}, fmt.Errorf("store: token store is not configured")
	}
	if s.cache == nil {
		return s.loadSnapshot(ctx)
	}
	return repositorycache.GetOrFetch(ctx, s.cache, credentialStorageKey, func(ctx context.Context) (credentialSnapshot, error) {
		return s.loadSnapshot(ctx)
	})
}

func (s *TokenStore) loadSnapshot(ctx context.Context) (credentialSnapshot, error) {
	payload, found, err := s.kv.Get(ctx, credentialStorageKey)
	if err != nil {
		return credentialSnapshot{}, fmt.Errorf("store: read credential: %w", err)
	}
	if !found || strings.TrimSpace(payload) == "" {
		return credentialSnapshot{}, nil
	}
	credential, issuedAt, err := s.codec.Decode(payload)
	if err != nil {
		return credentialSnapshot{}, fmt.Errorf("store: decode credential: %w", err)
	}
	if !credential.Present() {
		// A truncated or partial payload is treated as no session rather
		// than handing a half-credential to the pipeline.
		return credentialSnapshot{}, nil
	}
	return credentialSnapshot{Credential: credential, IssuedAt: issuedAt, Present: true}, nil
}

// Set replaces the stored credential wholesale. Partial credentials are
// rejected before anything is written.
func (s *TokenStore) Set(ctx context.Context, credential core.Credential) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("store: token store is not configured")
	}
	normalized := credential.Normalize()
	if !normalized.Present() {
		if normalized.Partial() {
			return fmt.Errorf("store: refusing to persist a partial credential")
		}
		return fmt.Errorf("store: refusing to persist an empty credential")
	}
	payload, err := s.codec.Encode(normalized, s.now().UTC())
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, credentialStorageKey, payload); err != nil {
		return fmt.Errorf("store: write credential: %w", err)
	}
	return s.invalidate(ctx)
}

// Clear removes the stored credential. Clearing an absent credential is
// not an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("store: token store is not configured")
	}
	if err := s.kv.Remove(ctx, credentialStorageKey); err != nil {
		return fmt.Errorf("store: remove credential: %w", err)
	}
	return s.invalidate(ctx)
}

func (s *TokenStore) invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, credentialStorageKey); err != nil {
		return fmt.Errorf("store: invalidate credential cache: %w", err)
	}
	return nil
}
