package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// Document represents one record in a collection as an opaque mapping
// of field name to value. Documents returned by reads include the
// store-assigned identifier under the "id" key.
type Document map[string]any

// Filter is a single equality predicate on one field, applied by List.
type Filter struct {
	Field string
	Value any
}

// Collection is a uniform CRUD facade over one named collection.
// Add assigns the identifier and both timestamps server-side; Update
// applies a merge-patch and always refreshes updatedAt; Update and
// Delete fail with ErrNotFound when the document is absent.
type Collection interface {
	List(ctx context.Context, filter *Filter) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Add(ctx context.Context, fields Document) (string, error)
	Update(ctx context.Context, id string, patch Document) error
	Delete(ctx context.Context, id string) error
}

// Store provides access to named collections.
type Store interface {
	Collection(name string) Collection
}

// timestamp returns the current time in the ISO-8601 form persisted on
// every document's createdAt/updatedAt fields.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// cloneDocument returns a copy of doc that shares no mutable state with
// the original. Values are scalars or flat slices.
func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		switch s := v.(type) {
		case []string:
			out[k] = append([]string(nil), s...)
		case []any:
			out[k] = append([]any(nil), s...)
		default:
			out[k] = v
		}
	}
	return out
}
