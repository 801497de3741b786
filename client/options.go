package client

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/parkhub/go-client/core"
	"github.com/parkhub/go-client/transport"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type clientBuilder struct {
	runtimeConfig      core.Config
	logger             core.Logger
	loggerProvider     core.LoggerProvider
	metricsRecorder    core.MetricsRecorder
	errorFactory       ErrorFactory
	errorMapper        ErrorMapper
	configProvider     core.ConfigProvider
	optionsResolver    core.OptionsResolver
	tokenStore         core.TokenStore
	transportAdapter   core.TransportAdapter
	httpClient         transport.HTTPDoer
	terminationHandler core.SessionTerminationHandler
	clientVersion      string
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *clientBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *clientBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

func WithTokenStore(store core.TokenStore) Option {
	return func(b *clientBuilder) {
		b.tokenStore = store
	}
}

func WithTransport(adapter core.TransportAdapter) Option {
	return func(b *clientBuilder) {
		b.transportAdapter = adapter
	}
}

// WithHTTPClient injects the underlying HTTP client for the default REST
// adapter. Ignored when WithTransport supplies a full adapter.
func WithHTTPClient(doer transport.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = doer
	}
}

func WithSessionTerminationHandler(handler core.SessionTerminationHandler) Option {
	return func(b *clientBuilder) {
		b.terminationHandler = handler
	}
}

func WithClientVersion(version string) Option {
	return func(b *clientBuilder) {
		b.clientVersion = version
	}
}

func defaultClientBuilder(runtime core.Config) clientBuilder {
	return clientBuilder{
		runtimeConfig:   runtime,
		metricsRecorder: core.NopMetricsRecorder{},
		errorFactory:    goerrors.New,
		errorMapper:     core.MapError,
		configProvider:  core.NewCfgxConfigProvider(nil),
		optionsResolver: core.GoOptionsResolver{},
	}
}
