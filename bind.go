/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymanager

import (
	"context"
	"reflect"

	"github.com/suparena/entitymanager/cache"
)

// Typed is a type-safe view over a Cache handle for the entity struct type E.
type Typed[E any] struct {
	c cache.Cache
}

// Bind registers the caller as a consumer of entity type E and returns its
// typed cache handle. Caches nobody binds are released by Finalize, so every
// consumer must bind before initialization finishes. Binding an unknown or
// already released type fails with a distinguishable error naming the type.
func Bind[E any](m *Manager) (*Typed[E], error) {
	t := indirect(reflect.TypeOf((*E)(nil)).Elem())
	c, err := m.bind(t)
	if err != nil {
		return nil, err
	}
	return &Typed[E]{c: c}, nil
}

// CacheFor looks up the typed cache handle for E without binding. Use after
// Finalize, for callers that received their wiring elsewhere.
func CacheFor[E any](m *Manager) (*Typed[E], error) {
	t := indirect(reflect.TypeOf((*E)(nil)).Elem())
	c, err := m.CacheOf(t)
	if err != nil {
		return nil, err
	}
	return &Typed[E]{c: c}, nil
}

// Load returns the cached entity for id, fetching it from the store on a miss.
func (tc *Typed[E]) Load(ctx context.Context, id any) (*E, error) {
	v, err := tc.c.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.(*E), nil
}

// Update stores entity under id and marks it dirty for the next Flush.
func (tc *Typed[E]) Update(id any, entity *E) {
	tc.c.Update(id, entity)
}

// Invalidate drops id from the cache.
func (tc *Typed[E]) Invalidate(id any) {
	tc.c.Invalidate(id)
}

// Flush writes all dirty entities back to the store.
func (tc *Typed[E]) Flush(ctx context.Context) error {
	return tc.c.Flush(ctx)
}

// Size returns the number of cached entities.
func (tc *Typed[E]) Size() int {
	return tc.c.Size()
}

// Unwrap exposes the untyped cache handle.
func (tc *Typed[E]) Unwrap() cache.Cache {
	return tc.c
}
