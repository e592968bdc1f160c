/*
Package datastore defines the document store capability the entity manager
consumes.

The main interface is DocumentStore, which pairs index administration with
per-collection read/write handles:

	type DocumentStore interface {
	    ListIndexes(ctx context.Context, collection string) ([]IndexInfo, error)
	    CreateIndex(ctx context.Context, collection, field string, ascending, unique bool) (string, error)
	    CreateTextIndex(ctx context.Context, collection, field string) (string, error)
	    Collection(name string) Collection
	}

Implementations:
  - mongo: MongoDB implementation, the primary backend
  - ddb: DynamoDB implementation mapping indexes onto global secondary indexes
  - mock: In-memory implementation for testing

Connection pooling, timeouts and retries are the connector's concern; the
manager performs blocking calls and treats failures as fatal startup errors.
*/
package datastore
