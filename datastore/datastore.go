/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import "context"

// IndexInfo describes one existing index of a collection.
type IndexInfo struct {
	// Name is the store-assigned index name.
	Name string
	// Keys lists the document field names the index covers.
	Keys []string
}

// DocumentStore is the capability the entity manager requires from a
// document database. Index reconciliation only needs to enumerate and create
// indexes; reads and writes go through per-collection handles.
type DocumentStore interface {
	// ListIndexes returns the existing indexes of a collection.
	ListIndexes(ctx context.Context, collection string) ([]IndexInfo, error)

	// CreateIndex creates a single-field index and returns its name.
	CreateIndex(ctx context.Context, collection, field string, ascending, unique bool) (string, error)

	// CreateTextIndex creates a full-text index on a field and returns its name.
	CreateTextIndex(ctx context.Context, collection, field string) (string, error)

	// Collection returns a handle for typed reads and writes.
	Collection(name string) Collection
}

// Collection is a typed read/write handle on one collection.
type Collection interface {
	// FindByID decodes the document with the given identity into out,
	// which must be a non-nil pointer. Returns an error matching
	// errors.ErrNotFound when no document exists.
	FindByID(ctx context.Context, id any, out any) error

	// Upsert writes doc under the given identity, inserting or replacing.
	Upsert(ctx context.Context, id any, doc any) error

	// DeleteByID removes the document with the given identity, if any.
	DeleteByID(ctx context.Context, id any) error
}
