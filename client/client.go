package client

import (
	"context"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/parkhub/go-client/core"
	"github.com/parkhub/go-client/store"
	"github.com/parkhub/go-client/transport"
)

// Client is the authenticated-request pipeline: it composes headers,
// dispatches requests, and recovers from access-token expiry through a
// single-flight refresh exchange. Dependencies are injected so isolated
// instances can exist side by side; there is no process-wide state.
type Client struct {
	config             core.Config
	logger             core.Logger
	loggerProvider     core.LoggerProvider
	metricsRecorder    core.MetricsRecorder
	errorFactory       ErrorFactory
	errorMapper        ErrorMapper
	tokenStore         core.TokenStore
	transportAdapter   core.TransportAdapter
	terminationHandler core.SessionTerminationHandler
	clientVersion      string

	refreshMu      sync.Mutex
	pendingRefresh *refreshCall
}

func New(cfg core.Config, opts ...Option) (*Client, error) {
	builder := defaultClientBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("parkhub-client", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("parkhub-client"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}
	if builder.errorFactory == nil {
		builder.errorFactory = defaultClientBuilder(cfg).errorFactory
	}
	if builder.errorMapper == nil {
		builder.errorMapper = core.MapError
	}
	if builder.configProvider == nil {
		builder.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = core.GoOptionsResolver{}
	}

	defaults := core.DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, builder.errorMapper(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, builder.errorMapper(err)
	}

	if builder.tokenStore == nil {
		memoryStore, storeErr := store.NewTokenStore(store.NewMemoryKeyValueStore())
		if storeErr != nil {
			return nil, builder.errorMapper(storeErr)
		}
		builder.tokenStore = memoryStore
	}
	if builder.transportAdapter == nil {
		builder.transportAdapter = transport.NewRESTAdapter(builder.httpClient)
	}

	return &Client{
		config:             finalConfig,
		logger:             logger,
		loggerProvider:     provider,
		metricsRecorder:    builder.metricsRecorder,
		errorFactory:       builder.errorFactory,
		errorMapper:        builder.errorMapper,
		tokenStore:         builder.tokenStore,
		transportAdapter:   builder.transportAdapter,
		terminationHandler: builder.terminationHandler,
		clientVersion:      strings.TrimSpace(builder.clientVersion),
	}, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() core.Config {
	if c == nil {
		return core.Config{}
	}
	return c.config
}

// TokenStore exposes the injected token store, mostly for wiring code.
func (c *Client) TokenStore() core.TokenStore {
	if c == nil {
		return nil
	}
	return c.tokenStore
}

func (c *Client) requestURL(path string) string {
	base := strings.TrimRight(strings.TrimSpace(c.config.BaseURL), "/")
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return base
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return base + trimmed
}
