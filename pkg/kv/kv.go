package kv

import (
	"context"
	"errors"
)

// Collection names for the document store. Each collection is an
// unordered set of JSON documents keyed by their primary identifier.
const (
	CollectionUsers       = "Users"
	CollectionCategories  = "Categories"
	CollectionProducts    = "Products"
	CollectionProductLogs = "ProductLogs"
)

// ErrNotFound signals that no document exists under the requested key.
var ErrNotFound = errors.New("kv: document not found")

// Store is the document-store contract the domain stores build on.
// There are no secondary indexes: any lookup other than by primary key
// goes through Scan, which returns every document in the collection.
type Store interface {
	// Put writes the document under key, replacing any existing value.
	Put(ctx context.Context, collection, key string, doc []byte) error

	// GetByKey returns the document stored under key, or ErrNotFound.
	GetByKey(ctx context.Context, collection, key string) ([]byte, error)

	// Scan returns every document in the collection, in no particular order.
	Scan(ctx context.Context, collection string) ([][]byte, error)

	// UpdatePartial merges the supplied fields into the document under key.
	// Fields absent from the map keep their stored values. Returns
	// ErrNotFound when no document exists under key.
	UpdatePartial(ctx context.Context, collection, key string, fields map[string]any) error

	// Delete removes the document under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, collection, key string) error
}
