package query

import (
	"context"

	"github.com/parkhub/go-client/core"
)

type CurrentUserReader interface {
	CurrentUser(ctx context.Context) (core.User, error)
}

type ServerStatusReader interface {
	ServerStatus(ctx context.Context) (core.ServerStatus, error)
}

type CurrentUserQuery struct {
	reader CurrentUserReader
}

func NewCurrentUserQuery(reader CurrentUserReader) *CurrentUserQuery {
	return &CurrentUserQuery{reader: reader}
}

func (q *CurrentUserQuery) Query(ctx context.Context, _ CurrentUserMessage) (core.User, error) {
	if q == nil || q.reader == nil {
		return core.User{}, queryDependencyError("query: current-user reader is required")
	}
	return q.reader.CurrentUser(ctx)
}

type ServerStatusQuery struct {
	reader ServerStatusReader
}

func NewServerStatusQuery(reader ServerStatusReader) *ServerStatusQuery {
	return &ServerStatusQuery{reader: reader}
}

func (q *ServerStatusQuery) Query(ctx context.Context, _ ServerStatusMessage) (core.ServerStatus, error) {
	if q == nil || q.reader == nil {
		return core.ServerStatus{}, queryDependencyError("query: server-status reader is required")
	}
	return q.reader.ServerStatus(ctx)
}
