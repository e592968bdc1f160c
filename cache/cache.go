/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/viccon/sturdyc"

	"github.com/suparena/entitymanager/datastore"
	"github.com/suparena/entitymanager/metadata"
)

// Cache is the handle consumers receive for one entity type. Load is
// read-through: a miss fetches the document from the backing collection.
// Update overwrites the cached entity and marks it dirty; Flush writes the
// dirty set back through the collection, the hook the persister strategy
// drives.
type Cache interface {
	// EntityType returns the cached entity struct type.
	EntityType() reflect.Type

	// Definition returns the immutable metadata of the entity type.
	Definition() metadata.Definition

	// Load returns the cached entity pointer for id, fetching it from the
	// store on a miss.
	Load(ctx context.Context, id any) (any, error)

	// Update stores entity under id and marks it dirty for the next Flush.
	Update(id any, entity any)

	// Invalidate drops id from the cache and from the dirty set.
	Invalidate(id any)

	// Flush writes all dirty entities back to the collection.
	Flush(ctx context.Context) error

	// Size returns the number of cached entities.
	Size() int
}

const (
	numShards          = 64
	evictionPercentage = 10
)

type dirtyEntry struct {
	id     any
	entity any
}

type entityCache struct {
	typ    reflect.Type
	def    metadata.Definition
	coll   datastore.Collection
	client *sturdyc.Client[any]
	logger *slog.Logger

	mu    sync.Mutex
	dirty map[string]dirtyEntry
}

// New builds a cache entry for one entity type, sized by the resolved cache
// strategy. Entities without a thread-safe shape still get a cache; their
// flush path simply serializes under the entry lock.
func New(typ reflect.Type, def metadata.Definition, coll datastore.Collection, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &entityCache{
		typ:    typ,
		def:    def,
		coll:   coll,
		client: sturdyc.New[any](def.CacheCapacity, numShards, def.CacheExpiry, evictionPercentage),
		logger: logger,
		dirty:  make(map[string]dirtyEntry),
	}
}

func (c *entityCache) EntityType() reflect.Type {
	return c.typ
}

func (c *entityCache) Definition() metadata.Definition {
	return c.def
}

func cacheKey(id any) string {
	return fmt.Sprintf("%v", id)
}

func (c *entityCache) Load(ctx context.Context, id any) (any, error) {
	return c.client.GetOrFetch(ctx, cacheKey(id), func(ctx context.Context) (any, error) {
		out := reflect.New(c.typ).Interface()
		if err := c.coll.FindByID(ctx, id, out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (c *entityCache) Update(id any, entity any) {
	key := cacheKey(id)
	c.client.Set(key, entity)

	c.mu.Lock()
	c.dirty[key] = dirtyEntry{id: id, entity: entity}
	c.mu.Unlock()
}

func (c *entityCache) Invalidate(id any) {
	key := cacheKey(id)
	c.client.Delete(key)

	c.mu.Lock()
	delete(c.dirty, key)
	c.mu.Unlock()
}

func (c *entityCache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.dirty {
		if err := c.coll.Upsert(ctx, entry.id, entry.entity); err != nil {
			return fmt.Errorf("flushing %s %v: %w", c.typ.Name(), entry.id, err)
		}
		delete(c.dirty, key)
	}
	return nil
}

func (c *entityCache) Size() int {
	return c.client.Size()
}
