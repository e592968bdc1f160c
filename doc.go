/*
Package entitymanager manages the lifecycle of domain entities that are
cached in memory and persisted in a document store.

It bridges application code, the in-process entity caches and the backing
database: it discovers registered entity types, validates their structural
safety for concurrent cache access, resolves per-type caching and
persistence policy, reconciles the store's index configuration against the
declared requirements, and releases caches no consumer ever binds.

Startup is a one-shot ordered sequence:

	cfg, _ := config.Load("entitymanager.yaml")
	store, _ := mongo.Connect(ctx, cfg.Host)
	mgr := entitymanager.New(cfg, store, logger)

	if err := mgr.Init(ctx); err != nil {
	    // fatal configuration error, abort startup
	}

	players, _ := entitymanager.Bind[PlayerEntity](mgr)

	mgr.Finalize() // caches nobody bound are released

Entity types register themselves through the metadata package, declare field
roles with `orm` struct tags, and implement the Entity capability. See the
metadata package documentation for the full set of rules.

After Finalize the manager is read-only and safe for concurrent use from any
number of request-handling goroutines. All problems Init detects are
structural or configuration errors; none are retried.
*/
package entitymanager
