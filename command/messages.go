package command

import (
	"fmt"
	"strings"

	"github.com/parkhub/go-client/core"
)

const (
	TypeLogin    = "parkhub.command.login"
	TypeRegister = "parkhub.command.register"
	TypeLogout   = "parkhub.command.logout"
	TypeRefresh  = "parkhub.command.session.refresh"
)

type LoginMessage struct {
	Request core.LoginRequest
}

func (LoginMessage) Type() string { return TypeLogin }

func (m LoginMessage) Validate() error {
	if strings.TrimSpace(m.Request.Username) == "" {
		return fmt.Errorf("command: username is required")
	}
	if m.Request.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type RegisterMessage struct {
	Request core.RegisterRequest
}

func (RegisterMessage) Type() string { return TypeRegister }

func (m RegisterMessage) Validate() error {
	if strings.TrimSpace(m.Request.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Request.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type LogoutMessage struct{}

func (LogoutMessage) Type() string { return TypeLogout }

func (LogoutMessage) Validate() error { return nil }

type RefreshSessionMessage struct{}

func (RefreshSessionMessage) Type() string { return TypeRefresh }

func (RefreshSessionMessage) Validate() error { return nil }
