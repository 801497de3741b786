package query

const (
	TypeCurrentUser  = "parkhub.query.user.current"
	TypeServerStatus = "parkhub.query.server.status"
)

type CurrentUserMessage struct{}

func (CurrentUserMessage) Type() string { return TypeCurrentUser }

func (CurrentUserMessage) Validate() error { return nil }

type ServerStatusMessage struct{}

func (ServerStatusMessage) Type() string { return TypeServerStatus }

func (ServerStatusMessage) Validate() error { return nil }
