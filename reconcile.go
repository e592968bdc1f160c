/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymanager

import (
	"context"
	"fmt"
	"reflect"
	"sort"
)

// reconcileIndexes synchronizes the declared indexes of one entity type
// against the store, additively. Presence is decided by field name: an
// existing index whose key set contains the field counts as present even
// when its sort order or uniqueness differs, and is never altered. Missing
// indexes are created; a rejected creation is a fatal startup error.
func (m *Manager) reconcileIndexes(ctx context.Context, t reflect.Type) error {
	def := m.defs[t]
	if len(def.Indexes) == 0 && len(def.TextIndexes) == 0 {
		return nil
	}

	collName := m.CollectionName(t)
	existing, err := m.store.ListIndexes(ctx, collName)
	if err != nil {
		return fmt.Errorf("listing indexes for entity %s: %w", t.Name(), err)
	}
	present := make(map[string]bool)
	for _, info := range existing {
		for _, key := range info.Keys {
			present[key] = true
		}
	}

	for _, field := range sortedKeys(def.Indexes) {
		if present[field] {
			continue
		}
		spec := def.Indexes[field]
		name, err := m.store.CreateIndex(ctx, collName, field, spec.Ascending, spec.Unique)
		if err != nil {
			return fmt.Errorf("entity %s: %w", t.Name(), err)
		}
		present[field] = true
		m.logger.Info("auto created field index",
			"collection", collName, "entity", t.Name(), "field", field,
			"index", name, "ascending", spec.Ascending, "unique", spec.Unique)
	}

	for _, field := range sortedKeys(def.TextIndexes) {
		if present[field] {
			continue
		}
		name, err := m.store.CreateTextIndex(ctx, collName, field)
		if err != nil {
			return fmt.Errorf("entity %s: %w", t.Name(), err)
		}
		present[field] = true
		m.logger.Info("auto created text index",
			"collection", collName, "entity", t.Name(), "field", field, "index", name)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
