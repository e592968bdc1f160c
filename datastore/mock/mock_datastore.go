/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DocumentStore
// capability for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/entitymanager/datastore"
	"github.com/suparena/entitymanager/errors"
)

// Store is an in-memory implementation of datastore.DocumentStore. It records
// every created index so tests can assert reconciliation behavior.
type Store struct {
	mu             sync.RWMutex
	docs           map[string]map[string]any
	indexes        map[string][]datastore.IndexInfo
	createCalls    int
	createIndexErr error
	listIndexesErr error
}

// New creates a new mock Store
func New() *Store {
	return &Store{
		docs:    make(map[string]map[string]any),
		indexes: make(map[string][]datastore.IndexInfo),
	}
}

// WithIndex pre-populates an existing index on a collection
func (s *Store) WithIndex(collection string, info datastore.IndexInfo) *Store {
	s.indexes[collection] = append(s.indexes[collection], info)
	return s
}

// WithCreateIndexError makes CreateIndex and CreateTextIndex return an error
func (s *Store) WithCreateIndexError(err error) *Store {
	s.createIndexErr = err
	return s
}

// WithListIndexesError makes ListIndexes return an error
func (s *Store) WithListIndexesError(err error) *Store {
	s.listIndexesErr = err
	return s
}

// CreateCalls returns how many indexes have been created so far, text
// indexes included.
func (s *Store) CreateCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createCalls
}

// Indexes returns a copy of the recorded indexes of a collection.
func (s *Store) Indexes(collection string) []datastore.IndexInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]datastore.IndexInfo, len(s.indexes[collection]))
	copy(out, s.indexes[collection])
	return out
}

// ListIndexes implements datastore.DocumentStore
func (s *Store) ListIndexes(ctx context.Context, collection string) ([]datastore.IndexInfo, error) {
	if s.listIndexesErr != nil {
		return nil, s.listIndexesErr
	}
	return s.Indexes(collection), nil
}

// CreateIndex implements datastore.DocumentStore
func (s *Store) CreateIndex(ctx context.Context, collection, field string, ascending, unique bool) (string, error) {
	if s.createIndexErr != nil {
		return "", errors.NewIndexCreateError(collection, field, s.createIndexErr)
	}
	order := "1"
	if !ascending {
		order = "-1"
	}
	name := field + "_" + order

	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[collection] = append(s.indexes[collection], datastore.IndexInfo{Name: name, Keys: []string{field}})
	s.createCalls++
	return name, nil
}

// CreateTextIndex implements datastore.DocumentStore
func (s *Store) CreateTextIndex(ctx context.Context, collection, field string) (string, error) {
	if s.createIndexErr != nil {
		return "", errors.NewIndexCreateError(collection, field, s.createIndexErr)
	}
	name := field + "_text"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[collection] = append(s.indexes[collection], datastore.IndexInfo{Name: name, Keys: []string{field}})
	s.createCalls++
	return name, nil
}

// Collection implements datastore.DocumentStore
func (s *Store) Collection(name string) datastore.Collection {
	return &collection{store: s, name: name}
}

type collection struct {
	store *Store
	name  string
}

func key(id any) string {
	return fmt.Sprintf("%v", id)
}

func (c *collection) FindByID(ctx context.Context, id any, out any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	doc, ok := c.store.docs[c.name][key(id)]
	if !ok {
		return errors.NewNotFoundError(c.name, key(id))
	}
	ov := reflect.ValueOf(out)
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("out must be a non-nil pointer")
	}
	ov.Elem().Set(reflect.ValueOf(doc))
	return nil
}

func (c *collection) Upsert(ctx context.Context, id any, doc any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.docs[c.name] == nil {
		c.store.docs[c.name] = make(map[string]any)
	}
	// Stored as the struct value so FindByID hands out copies.
	c.store.docs[c.name][key(id)] = reflect.Indirect(reflect.ValueOf(doc)).Interface()
	return nil
}

func (c *collection) DeleteByID(ctx context.Context, id any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	delete(c.store.docs[c.name], key(id))
	return nil
}
