package store

import (
	"context"
)

// Delimiter separates the levels of the archive key hierarchy
const Delimiter = "/"

// Store gives read access to a set of scene archive buckets.
type Store interface {
	// ListChildren returns the names of the direct children of prefix in
	// bucket (the common prefixes of a delimited listing). The returned
	// names keep the trailing delimiter.
	ListChildren(ctx context.Context, bucket, prefix string) ([]string, error)
	// GetObject returns the content of bucket/key
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}
