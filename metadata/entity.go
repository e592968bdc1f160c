/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"time"
)

// Entity is the capability every persistable record type must provide.
// EntityID returns the value of the field tagged `orm:"id"`; the identity
// checker verifies at startup that the two actually agree.
type Entity interface {
	EntityID() any
}

// IndexSpec describes a single-field index declared with `orm:"index"`.
type IndexSpec struct {
	Ascending bool
	Unique    bool
}

// TextIndexSpec describes a full-text index declared with `orm:"textindex"`.
// A collection can carry at most one text index.
type TextIndexSpec struct {
	Field string
}

// Definition is the immutable per-type metadata the manager derives during
// initialization. It is shared by reference and never mutated afterwards.
type Definition struct {
	// ThreadSafe is true when the validator found no mutable, non-concurrent
	// collection in the type's reachable field graph.
	ThreadSafe bool

	// CacheCapacity and CacheExpiry come from the resolved cache strategy.
	CacheCapacity int
	CacheExpiry   time.Duration

	// PersisterStrategy names the resolved persistence policy.
	PersisterStrategy string

	// IDField and VersionField are the Go field names carrying the id and
	// version roles. VersionField is empty when the entity declares none.
	IDField      string
	VersionField string

	// Indexes and TextIndexes map document field names to their declared specs.
	Indexes     map[string]IndexSpec
	TextIndexes map[string]TextIndexSpec
}
