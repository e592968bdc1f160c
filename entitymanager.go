/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymanager

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/suparena/entitymanager/cache"
	"github.com/suparena/entitymanager/config"
	"github.com/suparena/entitymanager/datastore"
	"github.com/suparena/entitymanager/errors"
	"github.com/suparena/entitymanager/metadata"
)

// Manager owns the entity caches and drives the startup pipeline: discovery,
// shape validation, strategy resolution, cache creation and index
// reconciliation, followed by consumer binding and the release of caches
// nobody bound.
//
// Initialization (Init, Bind, Finalize) is a single-threaded, ordered
// startup sequence. After Finalize the manager's maps are read-only and safe
// for unbounded concurrent reads.
type Manager struct {
	cfg    *config.Config
	store  datastore.DocumentStore
	logger *slog.Logger

	defs   map[reflect.Type]metadata.Definition
	caches map[reflect.Type]cache.Cache
	// bound tracks, per discovered entity, whether any consumer bound its
	// cache. Entries survive Finalize so lookups can tell "never an entity"
	// apart from "released to save memory".
	bound map[reflect.Type]bool

	collectionNames *xsync.Map
	finalized       bool
}

// New creates a Manager over the given store. A nil logger falls back to
// slog.Default().
func New(cfg *config.Config, store datastore.DocumentStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:             cfg,
		store:           store,
		logger:          logger,
		defs:            make(map[reflect.Type]metadata.Definition),
		caches:          make(map[reflect.Type]cache.Cache),
		bound:           make(map[reflect.Type]bool),
		collectionNames: xsync.NewMap(),
	}
}

// Init runs the startup pipeline over all registered entity types. Any
// structural or configuration problem aborts with an error; retrying cannot
// fix what Init rejects.
func (m *Manager) Init(ctx context.Context) error {
	regs := metadata.Discover()

	var unsafeCached []string
	for _, reg := range regs {
		t := reg.Type

		hasUnsafe, err := metadata.Validate(t)
		if err != nil {
			return fmt.Errorf("validating entity %s: %w", t.Name(), err)
		}
		desc, err := metadata.Describe(t)
		if err != nil {
			return fmt.Errorf("describing entity %s: %w", t.Name(), err)
		}
		cacheStrategy, err := m.cfg.ResolveCacheStrategy(t.Name(), reg.CacheStrategy)
		if err != nil {
			return err
		}
		persisterStrategy, err := m.cfg.ResolvePersisterStrategy(t.Name(), reg.PersisterStrategy)
		if err != nil {
			return err
		}

		def := metadata.Definition{
			ThreadSafe:        !hasUnsafe,
			CacheCapacity:     cacheStrategy.Size,
			CacheExpiry:       cacheStrategy.Expiry(),
			PersisterStrategy: persisterStrategy.Strategy,
			IDField:           desc.IDField,
			VersionField:      desc.VersionField,
			Indexes:           desc.Indexes,
			TextIndexes:       desc.TextIndexes,
		}
		m.defs[t] = def
		m.caches[t] = cache.New(t, def, m.store.Collection(m.CollectionName(t)), m.logger)
		m.bound[t] = false

		if hasUnsafe && reg.Cached {
			unsafeCached = append(unsafeCached, t.Name())
		}
	}

	if len(unsafeCached) > 0 {
		// Performance recommendation only; these entities stay cached but
		// their flush path serializes.
		m.logger.Info("to improve performance, use concurrency-safe collections in cached entities",
			"entities", strings.Join(unsafeCached, ", "))
	}

	for _, reg := range regs {
		if err := m.reconcileIndexes(ctx, reg.Type); err != nil {
			return err
		}
	}
	return nil
}

// bind flips the consumed flag for t and returns its cache handle.
func (m *Manager) bind(t reflect.Type) (cache.Cache, error) {
	usable, ok := m.bound[t]
	if !ok {
		return nil, errors.NewNotAnEntityError(typeName(t))
	}
	if m.finalized && !usable {
		return nil, errors.NewCacheReleasedError(typeName(t))
	}
	m.bound[t] = true
	return m.caches[t], nil
}

// Finalize releases every cache no consumer bound. Their memory is reclaimed
// because no live reference to them can exist. Call it once, after all
// consumers registered their interest.
func (m *Manager) Finalize() {
	released := 0
	for t, usable := range m.bound {
		if !usable {
			delete(m.caches, t)
			released++
		}
	}
	m.finalized = true
	if released > 0 {
		m.logger.Info("released entity caches never bound by a consumer", "count", released)
	}
}

// CacheOf returns the cache handle for the entity type t. The two failure
// modes are distinguishable: errors.ErrNotAnEntity when t was never
// registered, errors.ErrCacheReleased when it was registered but no consumer
// bound it before Finalize.
func (m *Manager) CacheOf(t reflect.Type) (cache.Cache, error) {
	t = indirect(t)
	usable, ok := m.bound[t]
	if !ok {
		return nil, errors.NewNotAnEntityError(typeName(t))
	}
	if !usable {
		return nil, errors.NewCacheReleasedError(typeName(t))
	}
	return m.caches[t], nil
}

// Definition returns the immutable metadata derived for the entity type t.
func (m *Manager) Definition(t reflect.Type) (metadata.Definition, bool) {
	def, ok := m.defs[indirect(t)]
	return def, ok
}

// AllCaches returns the surviving cache handles in a deterministic order.
func (m *Manager) AllCaches() []cache.Cache {
	out := make([]cache.Cache, 0, len(m.caches))
	for _, c := range m.caches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntityType().String() < out[j].EntityType().String()
	})
	return out
}

// Store returns the underlying document store.
func (m *Manager) Store() datastore.DocumentStore {
	return m.store
}

// Collection returns the store handle for the entity type's collection.
func (m *Manager) Collection(t reflect.Type) datastore.Collection {
	return m.store.Collection(m.CollectionName(indirect(t)))
}

// CollectionName derives the collection name of an entity type: the type
// name with a trailing "Entity" stripped and the first letter lowercased.
// Results are memoized; the memo map takes concurrent readers after startup.
func (m *Manager) CollectionName(t reflect.Type) string {
	t = indirect(t)
	key := t.String()
	if name, ok := m.collectionNames.Load(key); ok {
		return name.(string)
	}
	name := strings.TrimSuffix(t.Name(), "Entity")
	if name == "" {
		name = t.Name()
	}
	name = strings.ToLower(name[:1]) + name[1:]
	m.collectionNames.Store(key, name)
	return name
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
