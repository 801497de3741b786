package store

import "github.com/parkhub/go-client/core"

var (
	_ core.TokenStore    = (*TokenStore)(nil)
	_ core.KeyValueStore = (*MemoryKeyValueStore)(nil)
)
