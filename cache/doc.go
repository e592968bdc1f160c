/*
Package cache holds the per-entity cache entries the manager owns.

Each entry wraps a sturdyc client sized by the entity's resolved cache
strategy (capacity and expiry), backed by the entity's store collection for
read-through loads. Updates are tracked in a dirty set; Flush writes the
dirty set back to the collection and is the entry point the persister
strategy drives.

Entries are created for every discovered entity during initialization and
released again for types no consumer binds. Consumers never construct caches
themselves; they receive handles from the manager's Bind operation.
*/
package cache
