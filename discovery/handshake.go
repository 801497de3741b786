package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/parkhub/go-client/core"
)

// Handshake negotiates protocol compatibility with a candidate server
// before a client commits to it. The endpoint is unauthenticated.
func Handshake(ctx context.Context, adapter core.TransportAdapter, baseURL, clientVersion string) (core.HandshakeResponse, error) {
	if adapter == nil {
		return core.HandshakeResponse{}, fmt.Errorf("discovery: transport adapter is required")
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return core.HandshakeResponse{}, fmt.Errorf("discovery: base url is required")
	}

	body, err := json.Marshal(core.HandshakeRequest{
		ClientVersion:   strings.TrimSpace(clientVersion),
		ProtocolVersion: core.ProtocolVersion,
	})
	if err != nil {
		return core.HandshakeResponse{}, fmt.Errorf("discovery: encode handshake: %w", err)
	}

	res, err := adapter.Do(ctx, core.TransportRequest{
		Method:  http.MethodPost,
		URL:     base + core.DefaultHandshakePath,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return core.HandshakeResponse{}, fmt.Errorf("discovery: handshake request: %w", err)
	}

	env := core.Envelope{}
	if err := json.Unmarshal(res.Body, &env); err != nil {
		return core.HandshakeResponse{}, fmt.Errorf("discovery: decode handshake envelope: %w", err)
	}
	if !env.Success {
		return core.HandshakeResponse{}, core.EnvelopeFailure(env)
	}
	response, err := core.DecodeData[core.HandshakeResponse](env)
	if err != nil {
		return core.HandshakeResponse{}, err
	}
	if !CompatibleProtocol(core.ProtocolVersion, response.ProtocolVersion) {
		return core.HandshakeResponse{}, fmt.Errorf(
			"discovery: incompatible protocol version %q (client speaks %q)",
			response.ProtocolVersion, core.ProtocolVersion,
		)
	}
	return response, nil
}

// CompatibleProtocol reports whether two protocol versions share a major
// version. The server guarantees stability within a major.
func CompatibleProtocol(client, server string) bool {
	clientMajor, okClient := majorVersion(client)
	serverMajor, okServer := majorVersion(server)
	if !okClient || !okServer {
		return false
	}
	return clientMajor == serverMajor
}

func majorVersion(version string) (string, bool) {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		return "", false
	}
	major, _, _ := strings.Cut(trimmed, ".")
	if major == "" {
		return "", false
	}
	return major, true
}
