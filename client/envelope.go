package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/parkhub/go-client/core"
)

// decodeEnvelope normalizes a raw transport response into a result
// envelope. The server contractually emits envelope-shaped JSON for every
// status except 204; anything that fails that contract is reported as a
// network error, never raised.
func decodeEnvelope(res core.TransportResponse) core.Envelope {
	if res.StatusCode == http.StatusNoContent {
		return core.Envelope{Success: true}
	}
	if len(res.Body) == 0 {
		if res.StatusCode >= 200 && res.StatusCode < 300 {
			return core.Envelope{Success: true}
		}
		return networkErrorEnvelope(fmt.Errorf("empty response body with status %d", res.StatusCode))
	}
	var env core.Envelope
	if err := json.Unmarshal(res.Body, &env); err != nil {
		return networkErrorEnvelope(fmt.Errorf("malformed response body with status %d: %v", res.StatusCode, err))
	}
	return env
}

func networkErrorEnvelope(err error) core.Envelope {
	message := "network error"
	if err != nil {
		message = err.Error()
	}
	return core.Envelope{
		Success: false,
		Error: &core.EnvelopeError{
			Code:    core.ErrorCodeNetwork,
			Message: message,
		},
	}
}

func unauthorizedEnvelope() core.Envelope {
	return core.Envelope{
		Success: false,
		Error: &core.EnvelopeError{
			Code:    core.ErrorCodeUnauthorized,
			Message: "Session expired. Please log in again.",
		},
	}
}

func failureEnvelope(code string, message string) core.Envelope {
	return core.Envelope{
		Success: false,
		Error: &core.EnvelopeError{
			Code:    code,
			Message: message,
		},
	}
}
