// Package session persists the serialized session snapshot in the local
// client database. Absence of the slot means "anonymous".
package session

import "context"

// Repository is a small durable key/value slot keyed by string.
// Replace swaps the whole store for a single slot atomically.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Replace(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
