package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parkhub/go-client/core"
)

// Request describes one logical call against the server. Body is encoded
// as JSON; RawBody bytes are sent untouched for binary/multipart payloads,
// with the content type owned by the caller's headers.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	Body    any
	RawBody []byte
}

// Execute dispatches a request with the current bearer credential and
// recovers from a single authorization failure via the refresh protocol.
// It always returns an envelope; transport failures become NETWORK_ERROR
// values and never propagate as errors.
func (c *Client) Execute(ctx context.Context, req Request) core.Envelope {
	if c == nil {
		return failureEnvelope(core.ErrorCodeInternal, "client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.New().String()
	startedAt := time.Now().UTC()
	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	body, env, ok := c.encodeBody(req)
	if !ok {
		return env
	}

	res, err := c.dispatch(ctx, method, req, body)
	if err != nil {
		c.observeRequest(ctx, startedAt, requestID, method, req.Path, 0, "transport_error")
		return networkErrorEnvelope(err)
	}

	if res.StatusCode == http.StatusUnauthorized {
		call := c.refresh(ctx)
		if !call.ok {
			c.terminateSession(ctx, call, "refresh_failed")
			c.observeRequest(ctx, startedAt, requestID, method, req.Path, res.StatusCode, "session_terminated")
			return unauthorizedEnvelope()
		}
		// Exactly one retry; whatever the retried request returns is
		// surfaced as-is, a second 401 included.
		res, err = c.dispatch(ctx, method, req, body)
		if err != nil {
			c.observeRequest(ctx, startedAt, requestID, method, req.Path, 0, "transport_error")
			return networkErrorEnvelope(err)
		}
		c.observeRequest(ctx, startedAt, requestID, method, req.Path, res.StatusCode, "retried")
		return decodeEnvelope(res)
	}

	c.observeRequest(ctx, startedAt, requestID, method, req.Path, res.StatusCode, "completed")
	return decodeEnvelope(res)
}

// send dispatches a request without the authorization-recovery branch.
// The auth exchanges use it: a 401 from the login or register endpoint is
// a credential rejection, not token expiry, so the server's envelope must
// reach the caller untouched and the session must stay up.
func (c *Client) send(ctx context.Context, req Request) core.Envelope {
	if c == nil {
		return failureEnvelope(core.ErrorCodeInternal, "client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.New().String()
	startedAt := time.Now().UTC()
	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	body, env, ok := c.encodeBody(req)
	if !ok {
		return env
	}

	res, err := c.dispatch(ctx, method, req, body)
	if err != nil {
		c.observeRequest(ctx, startedAt, requestID, method, req.Path, 0, "transport_error")
		return networkErrorEnvelope(err)
	}
	c.observeRequest(ctx, startedAt, requestID, method, req.Path, res.StatusCode, "completed")
	return decodeEnvelope(res)
}

func (c *Client) encodeBody(req Request) ([]byte, core.Envelope, bool) {
	if req.RawBody != nil {
		return req.RawBody, core.Envelope{}, true
	}
	if req.Body == nil {
		return nil, core.Envelope{}, true
	}
	encoded, err := json.Marshal(req.Body)
	if err != nil {
		return nil, failureEnvelope(core.ErrorCodeBadInput, "encode request body: "+err.Error()), false
	}
	return encoded, core.Envelope{}, true
}

// dispatch performs a single send with freshly composed headers. The
// bearer credential is re-read from the token store on every attempt so a
// retry after refresh picks up the new access token.
func (c *Client) dispatch(ctx context.Context, method string, req Request, body []byte) (core.TransportResponse, error) {
	headers := c.composeHeaders(ctx, req)
	return c.transportAdapter.Do(ctx, core.TransportRequest{
		Method:               method,
		URL:                  c.requestURL(req.Path),
		Query:                req.Query,
		Headers:              headers,
		Body:                 body,
		Timeout:              c.config.RequestTimeout,
		MaxResponseBodyBytes: c.config.MaxResponseBodyBytes,
	})
}

// composeHeaders merges caller headers over the defaults. The content type
// is JSON unless the payload is raw (multipart bodies carry their own
// boundary); Authorization is always derived from the token store and is
// never caller-overridable.
func (c *Client) composeHeaders(ctx context.Context, req Request) map[string]string {
	headers := map[string]string{}
	if req.RawBody == nil {
		headers["Content-Type"] = "application/json"
	}
	if c.clientVersion != "" {
		headers["X-Client-Version"] = c.clientVersion
	}
	for key, value := range req.Headers {
		if strings.EqualFold(strings.TrimSpace(key), "Authorization") {
			continue
		}
		headers[key] = value
	}
	credential, present, err := c.tokenStore.Get(ctx)
	if err != nil {
		c.logError(ctx, "token store read failed", map[string]any{"error": err.Error()})
		delete(headers, "Authorization")
		return headers
	}
	if present && strings.TrimSpace(credential.AccessToken) != "" {
		headers["Authorization"] = "Bearer " + credential.AccessToken
	} else {
		delete(headers, "Authorization")
	}
	return headers
}

func (c *Client) Get(ctx context.Context, path string, query map[string]string) core.Envelope {
	return c.Execute(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) core.Envelope {
	return c.Execute(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) core.Envelope {
	return c.Execute(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) core.Envelope {
	return c.Execute(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Upload sends a raw payload; the caller's headers own the content type
// (multipart boundaries included).
func (c *Client) Upload(ctx context.Context, path string, payload []byte, headers map[string]string) core.Envelope {
	return c.Execute(ctx, Request{Method: http.MethodPost, Path: path, RawBody: payload, Headers: headers})
}
