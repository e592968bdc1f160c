/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"sort"
	"sync"
)

// Registration records an entity type made known to the manager, together
// with its type-level cache markers.
type Registration struct {
	// Type is the entity struct type (never a pointer type).
	Type reflect.Type

	// Cached marks the entity for in-memory caching. Only cached entities
	// trigger the thread-safety advisory when their shape is unsafe.
	Cached bool

	// CacheStrategy and PersisterStrategy name explicit policies. Empty means
	// the entity uses the configured default.
	CacheStrategy     string
	PersisterStrategy string
}

// Option customizes a Registration.
type Option func(*Registration)

// WithCache marks the entity for in-memory caching under the default policies.
func WithCache() Option {
	return func(r *Registration) {
		r.Cached = true
	}
}

// WithCacheStrategy marks the entity for caching under the named cache policy.
// The name must match a configured strategy exactly or initialization fails.
func WithCacheStrategy(name string) Option {
	return func(r *Registration) {
		r.Cached = true
		r.CacheStrategy = name
	}
}

// WithPersisterStrategy marks the entity for caching under the named
// persistence policy. The name must match a configured strategy exactly or
// initialization fails.
func WithPersisterStrategy(name string) Option {
	return func(r *Registration) {
		r.Cached = true
		r.PersisterStrategy = name
	}
}

var (
	regMu         sync.RWMutex
	registrations = make(map[reflect.Type]Registration)
)

// Register makes the entity type T known to the manager. T may be the struct
// type or a pointer to it. Duplicate registrations are deduplicated; the
// first one wins.
//
// Register only records the type. Structural validation happens during
// Manager.Init so that a malformed entity fails startup, not registration.
func Register[T any](opts ...Option) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	reg := Registration{Type: t}
	for _, opt := range opts {
		opt(&reg)
	}

	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registrations[t]; exists {
		return
	}
	registrations[t] = reg
}

// Discover returns a snapshot of all registered entity types in a
// deterministic order.
func Discover() []Registration {
	regMu.RLock()
	defer regMu.RUnlock()

	regs := make([]Registration, 0, len(registrations))
	for _, reg := range registrations {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].Type.String() < regs[j].Type.String()
	})
	return regs
}

// Reset clears the registry. Test support only.
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	registrations = make(map[reflect.Type]Registration)
}
