package kvstore

import (
	"context"
	"errors"
)

// Persistence keys used by the storefront and admin apps. Values are
// JSON-serialized snapshots; a missing or corrupt value always degrades to a
// default at the call site, never to a startup failure.
const (
	KeyCart           = "mercado_cart"
	KeyWhatsAppNumber = "mercado_whatsapp_number"
	KeyDemoProducts   = "mercado_demo_products"
	KeyDemoUser       = "mercado_demo_user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a string-keyed blob store. Writes are atomic at the granularity
// of one key.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
