package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/parkhub/go-client/core"
)

// MutatingService is the slice of the client pipeline the commands drive.
type MutatingService interface {
	Login(ctx context.Context, req core.LoginRequest) core.Envelope
	Register(ctx context.Context, req core.RegisterRequest) core.Envelope
	Logout(ctx context.Context) core.Envelope
	RefreshSession(ctx context.Context) bool
}

type LoginCommand struct {
	service MutatingService
}

func NewLoginCommand(service MutatingService) *LoginCommand {
	return &LoginCommand{service: service}
}

func (c *LoginCommand) Execute(ctx context.Context, msg LoginMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: login service is required")
	}
	env := c.service.Login(ctx, msg.Request)
	if !env.Success {
		return core.EnvelopeFailure(env)
	}
	result, err := core.DecodeData[core.LoginResult](env)
	if err != nil {
		return commandWrapInternal(err, "command: decode login result")
	}
	storeResult(ctx, result)
	return nil
}

type RegisterCommand struct {
	service MutatingService
}

func NewRegisterCommand(service MutatingService) *RegisterCommand {
	return &RegisterCommand{service: service}
}

func (c *RegisterCommand) Execute(ctx context.Context, msg RegisterMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: register service is required")
	}
	env := c.service.Register(ctx, msg.Request)
	if !env.Success {
		return core.EnvelopeFailure(env)
	}
	result, err := core.DecodeData[core.LoginResult](env)
	if err != nil {
		return commandWrapInternal(err, "command: decode register result")
	}
	storeResult(ctx, result)
	return nil
}

type LogoutCommand struct {
	service MutatingService
}

func NewLogoutCommand(service MutatingService) *LogoutCommand {
	return &LogoutCommand{service: service}
}

func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: logout service is required")
	}
	env := c.service.Logout(ctx)
	if !env.Success {
		return core.EnvelopeFailure(env)
	}
	return nil
}

type RefreshSessionCommand struct {
	service MutatingService
}

func NewRefreshSessionCommand(service MutatingService) *RefreshSessionCommand {
	return &RefreshSessionCommand{service: service}
}

func (c *RefreshSessionCommand) Execute(ctx context.Context, _ RefreshSessionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	if !c.service.RefreshSession(ctx) {
		return commandUnauthorizedError("command: session refresh failed")
	}
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
