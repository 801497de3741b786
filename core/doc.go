// Package core contains the canonical client domain contracts and entities:
// credentials, envelopes, configuration, and the error taxonomy. Transport
// and storage adapters depend on this package; core must not depend on any
// adapter.
package core
