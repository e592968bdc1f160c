//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymanager_test

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/suparena/entitymanager"
	"github.com/suparena/entitymanager/config"
	"github.com/suparena/entitymanager/datastore/mongo"
	"github.com/suparena/entitymanager/metadata"
)

// Run with: go test -tags integration ./...
// Requires ENTITYMANAGER_DB_ADDRESSES (and optionally credentials) in the
// environment or a .env file.

type MatchEntity struct {
	id      string `orm:"id"`
	version int64  `orm:"version"`
	Venue   string `orm:"index" bson:"venue"`
	Round   int64  `bson:"round"`
}

func (e *MatchEntity) ID() string         { return e.id }
func (e *MatchEntity) SetID(v string)     { e.id = v }
func (e *MatchEntity) Version() int64     { return e.version }
func (e *MatchEntity) SetVersion(v int64) { e.version = v }
func (e *MatchEntity) EntityID() any      { return e.id }

func integrationConfig(t *testing.T) *config.Config {
	t.Helper()
	_ = godotenv.Load()

	addresses := os.Getenv("ENTITYMANAGER_DB_ADDRESSES")
	if addresses == "" {
		t.Skip("Skipping integration test: ENTITYMANAGER_DB_ADDRESSES not set")
	}

	return &config.Config{
		Host: config.HostConfig{
			Addresses:  strings.Split(addresses, ","),
			User:       os.Getenv("ENTITYMANAGER_DB_USER"),
			Password:   os.Getenv("ENTITYMANAGER_DB_PASSWORD"),
			AuthSource: os.Getenv("ENTITYMANAGER_DB_AUTH_SOURCE"),
			Database:   "entitymanager_test",
		},
		Caches: []config.CacheStrategy{
			{Strategy: "default", Size: 100, ExpireMillisecond: 60_000},
		},
	}
}

func TestIntegrationLifecycle(t *testing.T) {
	cfg := integrationConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := mongo.Connect(ctx, cfg.Host)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer store.Disconnect(context.Background())

	metadata.Reset()
	defer metadata.Reset()
	metadata.Register[MatchEntity](metadata.WithCache())

	m := entitymanager.New(cfg, store, nil)
	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Reconciliation created the venue index.
	infos, err := store.ListIndexes(ctx, "match")
	if err != nil {
		t.Fatalf("ListIndexes failed: %v", err)
	}
	found := false
	for _, info := range infos {
		for _, key := range info.Keys {
			if key == "venue" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Expected an index on 'venue', got %v", infos)
	}

	matches, err := entitymanager.Bind[MatchEntity](m)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	m.Finalize()

	id := uuid.NewString()
	entity := &MatchEntity{id: id, Venue: "Table 3", Round: 1}
	matches.Update(id, entity)
	if err := matches.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	defer m.Collection(reflect.TypeOf(MatchEntity{})).DeleteByID(context.Background(), id)

	loaded, err := matches.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Venue != "Table 3" || loaded.Round != 1 {
		t.Errorf("Unexpected entity: %+v", loaded)
	}

	// A second Init over the same database must not recreate indexes.
	again := entitymanager.New(cfg, store, nil)
	if err := again.Init(ctx); err != nil {
		t.Fatalf("Second Init failed: %v", err)
	}
}
