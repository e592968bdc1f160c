/*
Package errors provides semantic error types for the EntityManager library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotAnEntity      = errors.New("type is not a registered entity")
	    ErrCacheReleased    = errors.New("entity cache released")
	    ErrInvalidEntity    = errors.New("invalid entity definition")
	    ErrStrategyNotFound = errors.New("strategy not found")
	    ErrIndexCreate      = errors.New("index creation failed")
	    ErrNotFound         = errors.New("document not found")
	)

The two lookup failures are deliberately distinct: ErrNotAnEntity means a type
was never registered at all, while ErrCacheReleased means the type was
registered but no consumer ever bound its cache, so the manager freed it at the
end of initialization. Operators can tell a missing registration apart from a
missing consumer wiring.

Usage:

	handle, err := entitymanager.Bind[Player](mgr)
	if err != nil {
	    if errors.IsNotAnEntity(err) {
	        // Player was never registered
	    }
	    return err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
