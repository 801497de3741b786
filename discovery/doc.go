// Package discovery locates ParkHub servers on the local network via mDNS
// and negotiates protocol compatibility through the handshake endpoint.
package discovery
