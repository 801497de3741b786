package command

import (
	"context"
	"encoding/json"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/parkhub/go-client/core"
)

type stubMutatingService struct {
	loginFn    func(ctx context.Context, req core.LoginRequest) core.Envelope
	registerFn func(ctx context.Context, req core.RegisterRequest) core.Envelope
	logoutFn   func(ctx context.Context) core.Envelope
	refreshFn  func(ctx context.Context) bool
}

func (s stubMutatingService) Login(ctx context.Context, req core.LoginRequest) core.Envelope {
	if s.loginFn == nil {
		return core.Envelope{Success: true}
	}
	return s.loginFn(ctx, req)
}

func (s stubMutatingService) Register(ctx context.Context, req core.RegisterRequest) core.Envelope {
	if s.registerFn == nil {
		return core.Envelope{Success: true}
	}
	return s.registerFn(ctx, req)
}

func (s stubMutatingService) Logout(ctx context.Context) core.Envelope {
	if s.logoutFn == nil {
		return core.Envelope{Success: true}
	}
	return s.logoutFn(ctx)
}

func (s stubMutatingService) RefreshSession(ctx context.Context) bool {
	if s.refreshFn == nil {
		return true
	}
	return s.refreshFn(ctx)
}

func successEnvelope(t *testing.T, payload any) core.Envelope {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return core.Envelope{Success: true, Data: data}
}

func TestLoginCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.LoginResult{
		User:   core.User{ID: "usr_1", Email: "driver@example.com"},
		Tokens: core.Credential{AccessToken: "acc", RefreshToken: "ref"},
	}
	called := false

	svc := stubMutatingService{
		loginFn: func(_ context.Context, req core.LoginRequest) core.Envelope {
			called = true
			if req.Username != "driver" {
				t.Fatalf("expected username driver, got %q", req.Username)
			}
			return successEnvelope(t, expected)
		},
	}

	cmd := NewLoginCommand(svc)
	collector := gocmd.NewResult[core.LoginResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, LoginMessage{Request: core.LoginRequest{Username: "driver", Password: "pw"}})
	if err != nil {
		t.Fatalf("execute login: %v", err)
	}
	if !called {
		t.Fatalf("expected login service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.User.ID != expected.User.ID || result.Tokens.AccessToken != expected.Tokens.AccessToken {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestLoginCommand_ErrorEnvelopeBecomesRichError(t *testing.T) {
	svc := stubMutatingService{
		loginFn: func(context.Context, core.LoginRequest) core.Envelope {
			return core.Envelope{
				Success: false,
				Error:   &core.EnvelopeError{Code: core.ErrorCodeUnauthorized, Message: "bad credentials"},
			}
		},
	}

	err := NewLoginCommand(svc).Execute(context.Background(), LoginMessage{
		Request: core.LoginRequest{Username: "driver", Password: "pw"},
	})
	if err == nil {
		t.Fatalf("expected error for rejected login")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.ErrorCodeUnauthorized {
		t.Fatalf("expected %s text code, got %q", core.ErrorCodeUnauthorized, rich.TextCode)
	}
}

func TestRegisterCommand_ExecuteStoresResult(t *testing.T) {
	expected := core.LoginResult{
		User:   core.User{ID: "usr_2", Email: "new@example.com"},
		Tokens: core.Credential{AccessToken: "acc", RefreshToken: "ref"},
	}
	svc := stubMutatingService{
		registerFn: func(_ context.Context, req core.RegisterRequest) core.Envelope {
			if req.Email != "new@example.com" {
				t.Fatalf("unexpected register payload: %#v", req)
			}
			return successEnvelope(t, expected)
		},
	}

	cmd := NewRegisterCommand(svc)
	collector := gocmd.NewResult[core.LoginResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, RegisterMessage{Request: core.RegisterRequest{
		Email:    "new@example.com",
		Password: "pw",
		Name:     "New Driver",
	}})
	if err != nil {
		t.Fatalf("execute register: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.User.ID != expected.User.ID {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestLogoutCommand_Delegates(t *testing.T) {
	called := false
	svc := stubMutatingService{
		logoutFn: func(context.Context) core.Envelope {
			called = true
			return core.Envelope{Success: true}
		},
	}
	if err := NewLogoutCommand(svc).Execute(context.Background(), LogoutMessage{}); err != nil {
		t.Fatalf("execute logout: %v", err)
	}
	if !called {
		t.Fatalf("expected logout invocation")
	}
}

func TestRefreshSessionCommand_FailureIsUnauthorized(t *testing.T) {
	svc := stubMutatingService{
		refreshFn: func(context.Context) bool { return false },
	}
	err := NewRefreshSessionCommand(svc).Execute(context.Background(), RefreshSessionMessage{})
	if err == nil {
		t.Fatalf("expected error for failed refresh")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.ErrorCodeUnauthorized {
		t.Fatalf("expected %s text code, got %q", core.ErrorCodeUnauthorized, rich.TextCode)
	}
}

func TestMessageValidation(t *testing.T) {
	if err := (LoginMessage{}).Validate(); err == nil {
		t.Fatalf("expected validation failure for empty login")
	}
	if err := (LoginMessage{Request: core.LoginRequest{Username: "u", Password: "p"}}).Validate(); err != nil {
		t.Fatalf("unexpected validation failure: %v", err)
	}
	if err := (RegisterMessage{Request: core.RegisterRequest{Email: "a@b.c"}}).Validate(); err == nil {
		t.Fatalf("expected validation failure for missing password")
	}
	if err := (LogoutMessage{}).Validate(); err != nil {
		t.Fatalf("logout message must always validate: %v", err)
	}
}

func TestCommands_NilServiceIsDependencyError(t *testing.T) {
	if err := (&LoginCommand{}).Execute(context.Background(), LoginMessage{}); err == nil {
		t.Fatalf("expected dependency error")
	}
	if err := (&RefreshSessionCommand{}).Execute(context.Background(), RefreshSessionMessage{}); err == nil {
		t.Fatalf("expected dependency error")
	}
}
