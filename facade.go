package parkhub

import (
	"fmt"

	clientcommand "github.com/parkhub/go-client/command"
	clientquery "github.com/parkhub/go-client/query"
)

// CommandQueryService is the surface the facade wires commands and
// queries against. *client.Client satisfies it.
type CommandQueryService interface {
	clientcommand.MutatingService
	clientquery.CurrentUserReader
	clientquery.ServerStatusReader
}

type Commands struct {
	Login          *clientcommand.LoginCommand
	Register       *clientcommand.RegisterCommand
	Logout         *clientcommand.LogoutCommand
	RefreshSession *clientcommand.RefreshSessionCommand
}

type Queries struct {
	CurrentUser  *clientquery.CurrentUserQuery
	ServerStatus *clientquery.ServerStatusQuery
}

// Facade bundles the command and query handlers over one pipeline so a
// host application can register them with its dispatcher in one move.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
	hooks    *ExtensionHooks
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	hooks *ExtensionHooks
}

// WithExtensionHooks attaches a bundle registry so downstream packages
// can compose their own handlers over the same service.
func WithExtensionHooks(hooks *ExtensionHooks) FacadeOption {
	return func(options *facadeOptions) {
		options.hooks = hooks
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("parkhub: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	facade := &Facade{service: service, hooks: cfg.hooks}
	facade.commands = Commands{
		Login:          clientcommand.NewLoginCommand(service),
		Register:       clientcommand.NewRegisterCommand(service),
		Logout:         clientcommand.NewLogoutCommand(service),
		RefreshSession: clientcommand.NewRefreshSessionCommand(service),
	}
	facade.queries = Queries{
		CurrentUser:  clientquery.NewCurrentUserQuery(service),
		ServerStatus: clientquery.NewServerStatusQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// BuildBundles instantiates every registered extension bundle against the
// facade's service. Missing hooks yield an empty map.
func (f *Facade) BuildBundles() (map[string]any, error) {
	if f == nil || f.hooks == nil {
		return map[string]any{}, nil
	}
	return f.hooks.BuildBundles(f.service)
}
