package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/parkhub/go-client/core"
)

const (
	defaultBrowseDomain  = "local."
	defaultBrowseTimeout = 5 * time.Second
)

// Browser finds ParkHub servers advertised over mDNS.
type Browser struct {
	serviceType string
	domain      string
	timeout     time.Duration
}

type BrowserOption func(*Browser)

func WithServiceType(serviceType string) BrowserOption {
	return func(b *Browser) {
		if strings.TrimSpace(serviceType) != "" {
			b.serviceType = strings.TrimSpace(serviceType)
		}
	}
}

func WithDomain(domain string) BrowserOption {
	return func(b *Browser) {
		if strings.TrimSpace(domain) != "" {
			b.domain = strings.TrimSpace(domain)
		}
	}
}

func WithBrowseTimeout(timeout time.Duration) BrowserOption {
	return func(b *Browser) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

func NewBrowser(opts ...BrowserOption) *Browser {
	browser := &Browser{
		serviceType: core.MDNSServiceType,
		domain:      defaultBrowseDomain,
		timeout:     defaultBrowseTimeout,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(browser)
	}
	return browser
}

// Browse scans the local network until the timeout elapses and returns
// every server that answered.
func (b *Browser) Browse(ctx context.Context) ([]core.ServerInfo, error) {
	if b == nil {
		return nil, fmt.Errorf("discovery: browser is not configured")
	}
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("discovery: new resolver: %w", err)
	}

	browseCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	servers := []core.ServerInfo{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if entry == nil {
				continue
			}
			servers = append(servers, serverFromEntry(entry))
		}
	}()

	if err := resolver.Browse(browseCtx, b.serviceType, b.domain, entries); err != nil {
		return nil, fmt.Errorf("discovery: browse: %w", err)
	}
	<-browseCtx.Done()
	<-done
	return servers, nil
}

func serverFromEntry(entry *zeroconf.ServiceEntry) core.ServerInfo {
	txt := parseTXT(entry.Text)
	info := core.ServerInfo{
		Name:            entry.Instance,
		Version:         txt["version"],
		ProtocolVersion: txt["protocol"],
		Host:            strings.TrimSuffix(entry.HostName, "."),
		Port:            entry.Port,
		TLS:             txt["tls"] == "true" || txt["tls"] == "1",
	}
	if len(entry.AddrIPv4) > 0 {
		info.Host = entry.AddrIPv4[0].String()
	}
	if info.Port == 0 {
		info.Port = core.DefaultServerPort
	}
	return info
}

func parseTXT(records []string) map[string]string {
	out := map[string]string{}
	for _, record := range records {
		key, value, found := strings.Cut(record, "=")
		if !found {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return out
}
