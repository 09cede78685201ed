package reconcile

import (
	"context"
	"time"
)

// Adapter describes how the engine reads a record type T.
type Adapter[T any] interface {
	// Name identifies the record type in logs and reports.
	Name() string
	// Key returns the identity of an item.
	Key(item T) string
	// Fingerprint returns a content hash of item. Bookkeeping fields such as
	// the sync timestamp must not contribute to it.
	Fingerprint(item T) (string, error)
	// Stamp returns a copy of item with its sync timestamp set to at.
	Stamp(item T, at time.Time) T
}

// Source is the remote, paginated system of record.
type Source[T any] interface {
	// FetchPage returns one page. Page numbers start at 1.
	FetchPage(ctx context.Context, page, size int) (Page[T], error)
}

// Store is the local mirror the engine converges onto the source.
type Store[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
	BulkInsert(ctx context.Context, items []T) error
	Insert(ctx context.Context, item T) error
	// Update replaces the stored record that has item's key.
	Update(ctx context.Context, item T) error
	// Touch sets the sync timestamp of the given keys without touching content.
	Touch(ctx context.Context, keys []string, at time.Time) error
	Delete(ctx context.Context, key string) error
}
