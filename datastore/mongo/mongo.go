/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mongo implements the DocumentStore capability on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suparena/entitymanager/config"
	"github.com/suparena/entitymanager/datastore"
	emerrors "github.com/suparena/entitymanager/errors"
)

// Store implements datastore.DocumentStore on a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds a MongoDB client from the host configuration and returns a
// Store bound to the configured database. The pool is sized to the host's
// parallelism; per-operation timeouts are the driver's concern.
func Connect(ctx context.Context, host config.HostConfig) (*Store, error) {
	opts := options.Client()
	if endpoints := host.Endpoints(); len(endpoints) > 0 {
		opts.SetHosts(endpoints)
	}
	if host.User != "" && host.Password != "" {
		authSource := host.AuthSource
		if authSource == "" {
			authSource = "admin"
		}
		opts.SetAuth(options.Credential{
			Username:   host.User,
			Password:   host.Password,
			AuthSource: authSource,
		})
	}
	maxPool := uint64(runtime.GOMAXPROCS(0)*2 + 1)
	opts.SetMaxPoolSize(maxPool)
	opts.SetMinPoolSize(1)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	return &Store{client: client, db: client.Database(host.Database)}, nil
}

// Disconnect releases the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying database for callers needing driver-level
// access.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// indexDoc is the shape of one listIndexes result document.
type indexDoc struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

// ListIndexes implements datastore.DocumentStore.
func (s *Store) ListIndexes(ctx context.Context, collection string) ([]datastore.IndexInfo, error) {
	cur, err := s.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing indexes of %s: %w", collection, err)
	}
	var docs []indexDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding indexes of %s: %w", collection, err)
	}

	infos := make([]datastore.IndexInfo, 0, len(docs))
	for _, doc := range docs {
		info := datastore.IndexInfo{Name: doc.Name}
		for _, key := range doc.Key {
			info.Keys = append(info.Keys, key.Key)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CreateIndex implements datastore.DocumentStore.
func (s *Store) CreateIndex(ctx context.Context, collection, field string, ascending, unique bool) (string, error) {
	order := 1
	if !ascending {
		order = -1
	}
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: order}},
		Options: options.Index().SetUnique(unique),
	}
	name, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		return "", emerrors.NewIndexCreateError(collection, field, err)
	}
	return name, nil
}

// CreateTextIndex implements datastore.DocumentStore.
func (s *Store) CreateTextIndex(ctx context.Context, collection, field string) (string, error) {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: "text"}},
	}
	name, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		return "", emerrors.NewIndexCreateError(collection, field, err)
	}
	return name, nil
}

// Collection implements datastore.DocumentStore.
func (s *Store) Collection(name string) datastore.Collection {
	return &collection{name: name, coll: s.db.Collection(name)}
}

type collection struct {
	name string
	coll *mongo.Collection
}

func (c *collection) FindByID(ctx context.Context, id any, out any) error {
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return emerrors.NewNotFoundError(c.name, fmt.Sprintf("%v", id))
	}
	return err
}

func (c *collection) Upsert(ctx context.Context, id any, doc any) error {
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func (c *collection) DeleteByID(ctx context.Context, id any) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
