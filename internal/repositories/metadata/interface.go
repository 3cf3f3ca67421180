package metadata

import "context"

// Repository is a small key/value table for bookkeeping that does not belong
// in the entity tables, e.g. the sync checkpoint.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
