package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/parkhub/go-client/core"
)

var (
	_ gocmd.Querier[CurrentUserMessage, core.User]          = (*CurrentUserQuery)(nil)
	_ gocmd.Querier[ServerStatusMessage, core.ServerStatus] = (*ServerStatusQuery)(nil)
)
