package sqlstore

import "github.com/parkhub/go-client/core"

var _ core.KeyValueStore = (*KeyValueStore)(nil)
