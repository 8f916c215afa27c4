// Package metadata is the local key/value store of the client. It plays the
// role browser storage plays for a web client: the credential record and the
// preferred language live here between runs.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store.
//
// Get returns common.ErrorNotFound when the key is absent. Delete is
// idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
