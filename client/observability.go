package client

import (
	"context"
	"time"

	"github.com/parkhub/go-client/core"
)

func (c *Client) logInfo(ctx context.Context, msg string, fields map[string]any) {
	c.logWithLevel(ctx, "info", msg, fields)
}

func (c *Client) logError(ctx context.Context, msg string, fields map[string]any) {
	c.logWithLevel(ctx, "error", msg, fields)
}

func (c *Client) logDebug(ctx context.Context, msg string, fields map[string]any) {
	c.logWithLevel(ctx, "debug", msg, fields)
}

func (c *Client) logWithLevel(ctx context.Context, level, msg string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok && len(fields) > 0 {
		logger = fieldsLogger.WithFields(fields)
		switch level {
		case "error":
			logger.Error(msg)
		case "debug":
			logger.Debug(msg)
		default:
			logger.Info(msg)
		}
		return
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(msg, args...)
	case "debug":
		logger.Debug(msg, args...)
	default:
		logger.Info(msg, args...)
	}
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return args
}

func (c *Client) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if c == nil || c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.IncCounter(ctx, name, value, core.CloneTags(tags))
}

func (c *Client) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if c == nil || c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.ObserveHistogram(ctx, name, value, core.CloneTags(tags))
}

func (c *Client) observeRequest(ctx context.Context, startedAt time.Time, requestID, method, path string, status int, outcome string) {
	tags := map[string]string{
		"method":  method,
		"outcome": outcome,
	}
	c.recordCounter(ctx, "client.request.total", 1, tags)
	c.recordHistogram(ctx, "client.request.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)
	c.logDebug(ctx, "request completed", map[string]any{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     status,
		"outcome":    outcome,
	})
}
