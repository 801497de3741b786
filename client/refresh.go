package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/parkhub/go-client/core"
)

// refreshCall is the shared pending-operation handle for the single-flight
// refresh protocol. The first caller to install it becomes the leader and
// performs the exchange; every other caller waits on done and observes the
// same outcome. teardown is shared so that a failed exchange destroys the
// session exactly once no matter how many callers saw the failure.
type refreshCall struct {
	done     chan struct{}
	ok       bool
	teardown sync.Once
}

type refreshTokenPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// refresh ensures a usable access token is available, coalescing
// concurrent invocations into a single exchange.
func (c *Client) refresh(ctx context.Context) *refreshCall {
	c.refreshMu.Lock()
	if pending := c.pendingRefresh; pending != nil {
		c.refreshMu.Unlock()
		<-pending.done
		return pending
	}
	call := &refreshCall{done: make(chan struct{})}
	c.pendingRefresh = call
	c.refreshMu.Unlock()

	// The exchange must run to completion even if the triggering caller
	// abandons interest; a cancelled half-refresh would leave the token
	// store inconsistent for every follower.
	call.ok = c.exchangeRefreshToken(context.WithoutCancel(ctx))

	close(call.done)
	c.refreshMu.Lock()
	c.pendingRefresh = nil
	c.refreshMu.Unlock()
	return call
}

func (c *Client) exchangeRefreshToken(ctx context.Context) bool {
	startedAt := time.Now().UTC()

	current, present, err := c.tokenStore.Get(ctx)
	if err != nil {
		c.observeRefresh(ctx, startedAt, "store_read_failed", err)
		return false
	}
	if !present || strings.TrimSpace(current.RefreshToken) == "" {
		c.observeRefresh(ctx, startedAt, "no_refresh_token", nil)
		return false
	}

	body, err := json.Marshal(map[string]string{"refresh_token": current.RefreshToken})
	if err != nil {
		c.observeRefresh(ctx, startedAt, "encode_failed", err)
		return false
	}

	res, err := c.transportAdapter.Do(ctx, core.TransportRequest{
		Method:               http.MethodPost,
		URL:                  c.requestURL(c.config.RefreshPath),
		Headers:              map[string]string{"Content-Type": "application/json"},
		Body:                 body,
		Timeout:              c.config.RequestTimeout,
		MaxResponseBodyBytes: c.config.MaxResponseBodyBytes,
	})
	if err != nil {
		c.observeRefresh(ctx, startedAt, "transport_failed", err)
		return false
	}

	env := decodeEnvelope(res)
	if !env.Success {
		c.observeRefresh(ctx, startedAt, "exchange_rejected", core.EnvelopeFailure(env))
		return false
	}
	payload, err := core.DecodeData[refreshTokenPayload](env)
	if err != nil {
		c.observeRefresh(ctx, startedAt, "malformed_exchange", err)
		return false
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		c.observeRefresh(ctx, startedAt, "missing_access_token", nil)
		return false
	}

	// The server may rotate the refresh token; keep the previous one when
	// it does not.
	next := core.Credential{
		AccessToken:  payload.AccessToken,
		RefreshToken: current.RefreshToken,
		TokenType:    payload.TokenType,
		ExpiresIn:    payload.ExpiresIn,
	}
	if rotated := strings.TrimSpace(payload.RefreshToken); rotated != "" {
		next.RefreshToken = rotated
	}
	if err := c.tokenStore.Set(ctx, next); err != nil {
		c.observeRefresh(ctx, startedAt, "store_write_failed", err)
		return false
	}

	c.observeRefresh(ctx, startedAt, "refreshed", nil)
	return true
}

// terminateSession destroys the session after a failed refresh exchange:
// the token store is cleared and the termination signal is emitted before
// any caller sees the UNAUTHORIZED envelope. Shared across all observers
// of the same refresh outcome, so it runs at most once.
func (c *Client) terminateSession(ctx context.Context, call *refreshCall, reason string) {
	if c == nil || call == nil {
		return
	}
	call.teardown.Do(func() {
		if err := c.tokenStore.Clear(ctx); err != nil {
			c.logError(ctx, "session teardown: clear token store failed", map[string]any{
				"error": err.Error(),
			})
		}
		c.logInfo(ctx, "session terminated", map[string]any{"reason": reason})
		c.recordCounter(ctx, "client.session.terminated.total", 1, map[string]string{"reason": reason})
		if c.terminationHandler != nil {
			c.terminationHandler(ctx, reason)
		}
	})
}

// RefreshSession performs (or joins) a refresh exchange and reports
// whether a usable access token is available afterwards. A failed exchange
// tears the session down.
func (c *Client) RefreshSession(ctx context.Context) bool {
	call := c.refresh(ctx)
	if !call.ok {
		c.terminateSession(ctx, call, "refresh_failed")
	}
	return call.ok
}

func (c *Client) observeRefresh(ctx context.Context, startedAt time.Time, outcome string, err error) {
	fields := map[string]any{
		"outcome":     outcome,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}
	tags := map[string]string{"outcome": outcome}
	c.recordCounter(ctx, "client.refresh.total", 1, tags)
	c.recordHistogram(ctx, "client.refresh.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)
	if err != nil {
		fields["error"] = err.Error()
		c.logError(ctx, "token refresh failed", fields)
		return
	}
	if outcome == "refreshed" {
		c.logInfo(ctx, "token refresh succeeded", fields)
		return
	}
	c.logInfo(ctx, "token refresh not performed", fields)
}
