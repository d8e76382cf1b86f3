// Package statestore persists the storefront's client-held state (cart,
// credentials) as opaque values under well-known keys. Every backend is a
// best-effort cache; the upstream API remains the source of truth.
package statestore

import "context"

// Keys the storefront persists under.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Repository is the swappable persistence mechanism behind the state holders.
// Load returns domain.ErrNotFound when the key has never been saved or was
// deleted.
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
