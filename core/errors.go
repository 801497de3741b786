package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Wire-level error codes. NETWORK_ERROR and UNAUTHORIZED are produced by
// the pipeline itself; every other code originates at the server and is
// passed through unchanged.
const (
	ErrorCodeNetwork      = "NETWORK_ERROR"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeBadInput     = "INVALID_INPUT"
	ErrorCodeInternal     = "INTERNAL_ERROR"
)

func clientErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureClientErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "session expired"):
		return newClientError(err.Error(), goerrors.CategoryAuth, ErrorCodeUnauthorized)
	case strings.Contains(msg, "not found"):
		return newClientError(err.Error(), goerrors.CategoryNotFound, ErrorCodeNotFound)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"), strings.Contains(msg, "unreachable"):
		return newClientError(err.Error(), goerrors.CategoryExternal, ErrorCodeNetwork)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newClientError(err.Error(), goerrors.CategoryBadInput, ErrorCodeBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureClientErrorEnvelope(mapped)
}

func newClientError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureClientErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureClientErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = clientHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultClientTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultClientTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorCodeBadInput
	case goerrors.CategoryNotFound:
		return ErrorCodeNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorCodeUnauthorized
	case goerrors.CategoryExternal:
		return ErrorCodeNetwork
	default:
		return ErrorCodeInternal
	}
}

func clientHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MapError normalizes any error into the client's rich-error envelope.
func MapError(err error) *goerrors.Error {
	return clientErrorMapper(err)
}

// EnvelopeFailure converts an error envelope into a rich error for callers
// that want Go error semantics (queries, commands) instead of envelope
// values.
func EnvelopeFailure(env Envelope) *goerrors.Error {
	if env.Success {
		return nil
	}
	code := ErrorCodeInternal
	message := "request failed"
	if env.Error != nil {
		if strings.TrimSpace(env.Error.Code) != "" {
			code = strings.TrimSpace(env.Error.Code)
		}
		if strings.TrimSpace(env.Error.Message) != "" {
			message = env.Error.Message
		}
	}
	category := goerrors.CategoryExternal
	switch code {
	case ErrorCodeUnauthorized:
		category = goerrors.CategoryAuth
	case ErrorCodeNotFound:
		category = goerrors.CategoryNotFound
	case ErrorCodeBadInput:
		category = goerrors.CategoryBadInput
	}
	return goerrors.New(message, category).
		WithCode(clientHTTPStatus(category)).
		WithTextCode(code)
}
