/*
Package metadata turns registered Go types into immutable entity descriptors.

Entities are plain structs implementing the Entity capability. Field roles are
declared with the `orm` struct tag:

	type PlayerEntity struct {
	    id      string                     `orm:"id"`
	    version int64                      `orm:"version"`
	    Email   string                     `orm:"index,unique"`
	    Name    string                     `orm:"textindex"`
	    Scores  *xsync.MapOf[string, int64]
	    scratch []byte                     `orm:"-"`
	}

	func (p *PlayerEntity) ID() string         { return p.id }
	func (p *PlayerEntity) SetID(id string)    { p.id = id }
	func (p *PlayerEntity) Version() int64     { return p.version }
	func (p *PlayerEntity) SetVersion(v int64) { p.version = v }
	func (p *PlayerEntity) EntityID() any      { return p.id }

Types are made known through explicit registration, typically from an init
function in the package defining the entity:

	metadata.Register[PlayerEntity](
	    metadata.WithCacheStrategy("tenMinute"),
	    metadata.WithPersisterStrategy("time30s"),
	)

Register is additive and deduplicating: the first registration of a type wins.
Discover returns a deterministic snapshot for the manager's startup pipeline.

Validation happens in two independent passes. Validate walks the reachable
field graph and decides whether the shape is safe for shared concurrent cache
access; plain maps and slices disqualify lock-free caching (advisory), while
raw interface-typed collections, non-byte arrays, non-base map keys and
collection/array nesting are rejected outright. Describe checks the identity
and version fields, including a runtime cross-check that writes a random value
into the id field and compares it against EntityID(), then collects the
declared index specifications.
*/
package metadata
