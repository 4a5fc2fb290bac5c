package store

import (
	"fmt"

	filestore "github.com/lumoswallet/go-sdk/store/file"
	inmemorystore "github.com/lumoswallet/go-sdk/store/inmemory"
	kvstore "github.com/lumoswallet/go-sdk/store/kv"
	sqlstore "github.com/lumoswallet/go-sdk/store/sql"
	"github.com/lumoswallet/go-sdk/types"
)

type Config struct {
	StoreType string
	BaseDir   string
}

// NewAccountRepository dispatches on the store kind consts declared in
// the types package.
func NewAccountRepository(cfg Config) (types.AccountRepository, error) {
	switch cfg.StoreType {
	case types.InMemoryStore:
		return inmemorystore.NewStateRepository(), nil
	case types.FileStore:
		return filestore.NewAccountRepository(cfg.BaseDir)
	case types.KVStore:
		return kvstore.NewAccountRepository(cfg.BaseDir, nil)
	case types.SQLStore:
		return sqlstore.NewAccountRepository(cfg.BaseDir)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.StoreType)
	}
}
