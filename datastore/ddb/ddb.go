/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddb implements the DocumentStore capability on AWS DynamoDB.
//
// Collections map to tables and declared indexes map to global secondary
// indexes. DynamoDB GSIs are neither unique nor ordered per key, so the
// ascending and unique attributes of a declared index are accepted and
// ignored. Text indexes have no DynamoDB counterpart and fail creation.
package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymanager/datastore"
	emerrors "github.com/suparena/entitymanager/errors"
)

// idAttribute is the partition key attribute every entity table uses.
const idAttribute = "id"

// Store implements datastore.DocumentStore on DynamoDB.
type Store struct {
	client *sdk.Client
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a Store from static AWS credentials.
func New(awsAccessKey, awsSecretKey, awsRegion string) (*Store, error) {
	client, err := NewClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// NewFromClient constructs a Store from an existing client.
func NewFromClient(client *sdk.Client) *Store {
	return &Store{client: client}
}

// ListIndexes implements datastore.DocumentStore. The table's own key schema
// is reported as the "primary" index, followed by the global secondary
// indexes.
func (s *Store) ListIndexes(ctx context.Context, collection string) ([]datastore.IndexInfo, error) {
	out, err := s.client.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(collection),
	})
	if err != nil {
		return nil, fmt.Errorf("describing table %s: %w", collection, err)
	}

	var infos []datastore.IndexInfo
	primary := datastore.IndexInfo{Name: "primary"}
	for _, key := range out.Table.KeySchema {
		primary.Keys = append(primary.Keys, aws.ToString(key.AttributeName))
	}
	infos = append(infos, primary)

	for _, gsi := range out.Table.GlobalSecondaryIndexes {
		info := datastore.IndexInfo{Name: aws.ToString(gsi.IndexName)}
		for _, key := range gsi.KeySchema {
			info.Keys = append(info.Keys, aws.ToString(key.AttributeName))
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CreateIndex implements datastore.DocumentStore by creating a GSI keyed on
// the field. The field is declared as a string attribute, the attribute kind
// DynamoDB requires up front for key attributes.
func (s *Store) CreateIndex(ctx context.Context, collection, field string, ascending, unique bool) (string, error) {
	indexName := field + "-index"
	_, err := s.client.UpdateTable(ctx, &sdk.UpdateTableInput{
		TableName: aws.String(collection),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(field), AttributeType: types.ScalarAttributeTypeS},
		},
		GlobalSecondaryIndexUpdates: []types.GlobalSecondaryIndexUpdate{
			{
				Create: &types.CreateGlobalSecondaryIndexAction{
					IndexName: aws.String(indexName),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String(field), KeyType: types.KeyTypeHash},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
		},
	})
	if err != nil {
		return "", emerrors.NewIndexCreateError(collection, field, err)
	}
	return indexName, nil
}

// CreateTextIndex implements datastore.DocumentStore. DynamoDB has no text
// index; the failure surfaces as a fatal startup error in the manager.
func (s *Store) CreateTextIndex(ctx context.Context, collection, field string) (string, error) {
	return "", emerrors.NewIndexCreateError(collection, field,
		fmt.Errorf("text indexes are not supported by the DynamoDB store"))
}

// Collection implements datastore.DocumentStore.
func (s *Store) Collection(name string) datastore.Collection {
	return &table{client: s.client, name: name}
}

type table struct {
	client *sdk.Client
	name   string
}

func (t *table) key(id any) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("marshaling id for %s: %w", t.name, err)
	}
	return map[string]types.AttributeValue{idAttribute: av}, nil
}

func (t *table) FindByID(ctx context.Context, id any, out any) error {
	key, err := t.key(id)
	if err != nil {
		return err
	}
	res, err := t.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(t.name),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("getting item from %s: %w", t.name, err)
	}
	if len(res.Item) == 0 {
		return emerrors.NewNotFoundError(t.name, fmt.Sprintf("%v", id))
	}
	return attributevalue.UnmarshalMap(res.Item, out)
}

func (t *table) Upsert(ctx context.Context, id any, doc any) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshaling item for %s: %w", t.name, err)
	}
	idAV, err := attributevalue.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshaling id for %s: %w", t.name, err)
	}
	item[idAttribute] = idAV

	_, err = t.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(t.name),
		Item:      item,
	})
	return err
}

func (t *table) DeleteByID(ctx context.Context, id any) error {
	key, err := t.key(id)
	if err != nil {
		return err
	}
	_, err = t.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       key,
	})
	return err
}
