package storage

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

var (
	ErrKeyRequired      = errors.New("storage: key is required")
	ErrDatabaseRequired = errors.New("storage: bun adapter requires a database")
	ErrStoreRequired    = errors.New("storage: badger adapter requires a store")
	ErrClosed           = errors.New("storage: adapter is closed")
)

// Operation names used in logs and error text codes.
const (
	opGet    = "get"
	opSet    = "set"
	opRemove = "remove"
	opOpen   = "open"
)

// fail logs err at the adapter boundary and returns it wrapped as an internal
// go-errors error carrying a STORAGE_<OP>_FAILED text code.
func fail(logger interfaces.Logger, backend, op, key string, err error) error {
	if err == nil {
		return nil
	}
	logger.Error("storage."+op+".failed", "backend", backend, "key", key, "error", err)
	return goerrors.Wrap(err, goerrors.CategoryInternal, "storage "+op+" failed").
		WithTextCode("STORAGE_" + strings.ToUpper(op) + "_FAILED").
		WithMetadata(map[string]any{
			"backend": backend,
			"key":     key,
		})
}

func validKey(key string) bool {
	return strings.TrimSpace(key) != ""
}
