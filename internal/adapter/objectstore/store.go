// Package objectstore holds generated export bundles as opaque objects and
// signs short-lived download URLs for them.
package objectstore

import "context"

// Store is a flat object store keyed by object name.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	// List returns object names under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
