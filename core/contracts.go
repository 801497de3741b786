package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// TokenStore is the exclusive owner of the persisted credential. Reads are
// served from memory after the first durable load; writes always replace
// the whole credential.
type TokenStore interface {
	Get(ctx context.Context) (Credential, bool, error)
	Set(ctx context.Context, credential Credential) error
	Clear(ctx context.Context) error
}

// KeyValueStore is the durable storage collaborator the token store is
// built on. Implementations are swappable (in-memory, sqlite, secure
// store) without changing the pipeline's contract.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// SessionTerminationHandler is invoked when the session is destroyed
// because a refresh exchange failed. The surrounding application decides
// what teardown means; the pipeline only emits the signal.
type SessionTerminationHandler func(ctx context.Context, reason string)

type TransportRequest struct {
	Method               string
	URL                  string
	Query                map[string]string
	Headers              map[string]string
	Body                 []byte
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// TransportAdapter delivers a single request. Transport-level failures are
// returned as errors; the envelope codec converts them to NETWORK_ERROR
// envelopes at the dispatch boundary.
type TransportAdapter interface {
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
