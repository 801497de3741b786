package client

import (
	"context"

	"github.com/parkhub/go-client/core"
	"github.com/parkhub/go-client/discovery"
)

// Handshake negotiates protocol compatibility with the configured server,
// announcing the version supplied through WithClientVersion.
func (c *Client) Handshake(ctx context.Context) (core.HandshakeResponse, error) {
	response, err := discovery.Handshake(ctx, c.transportAdapter, c.config.BaseURL, c.clientVersion)
	if err != nil {
		return core.HandshakeResponse{}, c.errorMapper(err)
	}
	return response, nil
}
