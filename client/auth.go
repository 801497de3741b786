package client

import (
	"context"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/parkhub/go-client/core"
)

// Login exchanges credentials for a session. On success the returned
// tokens are persisted before the envelope is handed back, so a
// subsequent request can already authenticate. The exchange bypasses the
// authorization-recovery branch: a 401 here means the credentials were
// rejected, and the server's envelope is returned as-is.
func (c *Client) Login(ctx context.Context, req core.LoginRequest) core.Envelope {
	env := c.send(ctx, Request{Method: http.MethodPost, Path: c.config.LoginPath, Body: req})
	if !env.Success {
		return env
	}
	return c.storeSessionTokens(ctx, env)
}

// Register creates an account and, like Login, persists the issued tokens
// when the server includes them in the response.
func (c *Client) Register(ctx context.Context, req core.RegisterRequest) core.Envelope {
	env := c.send(ctx, Request{Method: http.MethodPost, Path: c.config.RegisterPath, Body: req})
	if !env.Success {
		return env
	}
	return c.storeSessionTokens(ctx, env)
}

func (c *Client) storeSessionTokens(ctx context.Context, env core.Envelope) core.Envelope {
	result, err := core.DecodeData[core.LoginResult](env)
	if err != nil {
		return failureEnvelope(core.ErrorCodeInternal, "decode session payload: "+err.Error())
	}
	credential := result.Tokens.Normalize()
	if !credential.Present() {
		return failureEnvelope(core.ErrorCodeInternal, "session response is missing tokens")
	}
	if err := c.tokenStore.Set(ctx, credential); err != nil {
		c.logError(ctx, "persist session tokens failed", map[string]any{"error": err.Error()})
		return failureEnvelope(core.ErrorCodeInternal, "persist session tokens: "+err.Error())
	}
	c.logInfo(ctx, "session established", map[string]any{"user_id": result.User.ID})
	return env
}

// Logout discards the local session. It never signals session
// termination; that channel is reserved for involuntary expiry.
func (c *Client) Logout(ctx context.Context) core.Envelope {
	if err := c.tokenStore.Clear(ctx); err != nil {
		c.logError(ctx, "clear session failed", map[string]any{"error": err.Error()})
		return failureEnvelope(core.ErrorCodeInternal, "clear session: "+err.Error())
	}
	c.logInfo(ctx, "session cleared", nil)
	return core.Envelope{Success: true}
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (core.User, error) {
	env := c.Get(ctx, core.DefaultUserPath, nil)
	if !env.Success {
		return core.User{}, core.EnvelopeFailure(env)
	}
	user, err := core.DecodeData[core.User](env)
	if err != nil {
		return core.User{}, c.errorFactory("malformed user payload: "+err.Error(), goerrors.CategoryExternal).
			WithTextCode(core.ErrorCodeInternal)
	}
	return user, nil
}

// ServerStatus probes the unauthenticated status endpoint.
func (c *Client) ServerStatus(ctx context.Context) (core.ServerStatus, error) {
	env := c.Get(ctx, core.DefaultStatusPath, nil)
	if !env.Success {
		return core.ServerStatus{}, core.EnvelopeFailure(env)
	}
	status, err := core.DecodeData[core.ServerStatus](env)
	if err != nil {
		return core.ServerStatus{}, c.errorFactory("malformed status payload: "+err.Error(), goerrors.CategoryExternal).
			WithTextCode(core.ErrorCodeInternal)
	}
	return status, nil
}
