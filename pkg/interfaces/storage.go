package interfaces

import "context"

// StorageAdapter is the key-value persistence port behind the catalog
// repositories. Get reports found=false with a nil error when the key is
// absent. Implementations must behave identically whether they are backed by
// a persistent store or by process memory.
type StorageAdapter interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// ClosableStorage is implemented by adapters holding external resources.
type ClosableStorage interface {
	StorageAdapter
	Close() error
}
