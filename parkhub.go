// Package parkhub is the public entry point for the ParkHub client
// library: it re-exports the pipeline's primary types and wires the
// command/query facade over a configured client.
package parkhub

import (
	"github.com/parkhub/go-client/client"
	"github.com/parkhub/go-client/core"
)

type Config = core.Config

type Credential = core.Credential

type Envelope = core.Envelope
type EnvelopeError = core.EnvelopeError

type User = core.User
type LoginRequest = core.LoginRequest
type RegisterRequest = core.RegisterRequest
type LoginResult = core.LoginResult
type ServerInfo = core.ServerInfo
type ServerStatus = core.ServerStatus

type TokenStore = core.TokenStore
type KeyValueStore = core.KeyValueStore
type SessionTerminationHandler = core.SessionTerminationHandler

type Client = client.Client
type Option = client.Option
type Request = client.Request

var (
	WithLogger                    = client.WithLogger
	WithLoggerProvider            = client.WithLoggerProvider
	WithMetricsRecorder           = client.WithMetricsRecorder
	WithErrorFactory              = client.WithErrorFactory
	WithErrorMapper               = client.WithErrorMapper
	WithConfigProvider            = client.WithConfigProvider
	WithOptionsResolver           = client.WithOptionsResolver
	WithTokenStore                = client.WithTokenStore
	WithTransport                 = client.WithTransport
	WithHTTPClient                = client.WithHTTPClient
	WithSessionTerminationHandler = client.WithSessionTerminationHandler
	WithClientVersion             = client.WithClientVersion
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New builds a configured client pipeline.
func New(cfg Config, opts ...Option) (*Client, error) {
	return client.New(cfg, opts...)
}

// Setup builds a client and the command/query facade over it in one call.
func Setup(cfg Config, opts ...Option) (*Client, *Facade, error) {
	c, err := client.New(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	facade, err := NewFacade(c)
	if err != nil {
		return nil, nil, err
	}
	return c, facade, nil
}
