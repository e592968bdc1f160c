/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/suparena/entitymanager/datastore/mock"
	"github.com/suparena/entitymanager/errors"
	"github.com/suparena/entitymanager/metadata"
)

type profile struct {
	ID    string
	Email string
	Score int64
}

func newProfileCache(store *mock.Store) Cache {
	def := metadata.Definition{
		CacheCapacity: 100,
		CacheExpiry:   10 * time.Minute,
	}
	return New(reflect.TypeOf(profile{}), def, store.Collection("profiles"), nil)
}

func TestLoadReadThrough(t *testing.T) {
	ctx := context.Background()
	store := mock.New()
	coll := store.Collection("profiles")
	if err := coll.Upsert(ctx, "p1", &profile{ID: "p1", Email: "p1@example.com", Score: 42}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	c := newProfileCache(store)

	v, err := c.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p, ok := v.(*profile)
	if !ok {
		t.Fatalf("Expected *profile, got %T", v)
	}
	if p.Email != "p1@example.com" || p.Score != 42 {
		t.Errorf("Unexpected entity: %+v", p)
	}

	// A second load is served from the cache: same pointer, no refetch.
	again, err := c.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.(*profile) != p {
		t.Error("Expected the cached pointer on the second load")
	}
	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}
}

func TestLoadMiss(t *testing.T) {
	c := newProfileCache(mock.New())
	_, err := c.Load(context.Background(), "absent")
	if err == nil {
		t.Fatal("Expected an error for a missing document")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndFlush(t *testing.T) {
	ctx := context.Background()
	store := mock.New()
	c := newProfileCache(store)

	c.Update("p2", &profile{ID: "p2", Email: "p2@example.com"})
	c.Update("p3", &profile{ID: "p3", Email: "p3@example.com"})

	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	var got profile
	if err := store.Collection("profiles").FindByID(ctx, "p2", &got); err != nil {
		t.Fatalf("FindByID after flush failed: %v", err)
	}
	if got.Email != "p2@example.com" {
		t.Errorf("Unexpected flushed entity: %+v", got)
	}

	// Flush drains the dirty set: a deleted document stays deleted.
	if err := store.Collection("profiles").DeleteByID(ctx, "p2"); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Second flush failed: %v", err)
	}
	if err := store.Collection("profiles").FindByID(ctx, "p2", &got); !errors.IsNotFound(err) {
		t.Errorf("Expected the second flush to write nothing, got %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	store := mock.New()
	c := newProfileCache(store)

	c.Update("p4", &profile{ID: "p4"})
	c.Invalidate("p4")

	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	var got profile
	if err := store.Collection("profiles").FindByID(ctx, "p4", &got); !errors.IsNotFound(err) {
		t.Errorf("Expected invalidated entity not to be flushed, got %v", err)
	}
	if c.Size() != 0 {
		t.Errorf("Expected size 0 after invalidate, got %d", c.Size())
	}
}
