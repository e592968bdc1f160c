/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotAnEntity is returned when a type was never registered as an entity
	ErrNotAnEntity = errors.New("type is not a registered entity")

	// ErrCacheReleased is returned when an entity cache was released before use
	ErrCacheReleased = errors.New("entity cache released")

	// ErrInvalidEntity is returned when an entity type fails shape validation
	ErrInvalidEntity = errors.New("invalid entity definition")

	// ErrStrategyNotFound is returned when a named strategy is not configured
	ErrStrategyNotFound = errors.New("strategy not found")

	// ErrIndexCreate is returned when the store rejects an index creation
	ErrIndexCreate = errors.New("index creation failed")

	// ErrNotFound is returned when a document is not found in the store
	ErrNotFound = errors.New("document not found")
)

// NotAnEntityError reports a cache request for a type that was never
// registered as an entity.
type NotAnEntityError struct {
	Type string
}

func (e *NotAnEntityError) Error() string {
	return fmt.Sprintf("no entity cache defined for %s, the type was never registered as an entity", e.Type)
}

func (e *NotAnEntityError) Is(target error) bool {
	return target == ErrNotAnEntity
}

// CacheReleasedError reports a cache request for an entity that was registered
// but never bound by a consumer, so its cache was released to save memory.
type CacheReleasedError struct {
	Type string
}

func (e *CacheReleasedError) Error() string {
	return fmt.Sprintf("entity cache for %s was never bound by a consumer and has been released to save memory", e.Type)
}

func (e *CacheReleasedError) Is(target error) bool {
	return target == ErrCacheReleased
}

// DefinitionError reports a structural problem with an entity type.
// Field is empty when the problem concerns the type as a whole.
type DefinitionError struct {
	Type    string
	Field   string
	Message string
}

func (e *DefinitionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("entity %s field %q: %s", e.Type, e.Field, e.Message)
	}
	return fmt.Sprintf("entity %s: %s", e.Type, e.Message)
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidEntity
}

// StrategyNotFoundError reports an entity naming a strategy that is absent
// from the configured strategy lists.
type StrategyNotFoundError struct {
	Type     string
	Kind     string // "cache" or "persister"
	Strategy string
}

func (e *StrategyNotFoundError) Error() string {
	return fmt.Sprintf("entity %s: no %s strategy %q configured", e.Type, e.Kind, e.Strategy)
}

func (e *StrategyNotFoundError) Is(target error) bool {
	return target == ErrStrategyNotFound
}

// IndexCreateError reports a rejected index creation against the store.
type IndexCreateError struct {
	Collection string
	Field      string
	Cause      error
}

func (e *IndexCreateError) Error() string {
	return fmt.Sprintf("creating index on %s.%s: %v", e.Collection, e.Field, e.Cause)
}

func (e *IndexCreateError) Is(target error) bool {
	return target == ErrIndexCreate
}

func (e *IndexCreateError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a document missing from a collection.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document with key %q not found in %s", e.Key, e.Collection)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Helper functions for creating errors

// NewNotAnEntityError creates a new NotAnEntityError
func NewNotAnEntityError(entityType string) error {
	return &NotAnEntityError{Type: entityType}
}

// NewCacheReleasedError creates a new CacheReleasedError
func NewCacheReleasedError(entityType string) error {
	return &CacheReleasedError{Type: entityType}
}

// NewDefinitionError creates a new DefinitionError
func NewDefinitionError(entityType, field, message string) error {
	return &DefinitionError{Type: entityType, Field: field, Message: message}
}

// NewStrategyNotFoundError creates a new StrategyNotFoundError
func NewStrategyNotFoundError(entityType, kind, strategy string) error {
	return &StrategyNotFoundError{Type: entityType, Kind: kind, Strategy: strategy}
}

// NewIndexCreateError creates a new IndexCreateError
func NewIndexCreateError(collection, field string, cause error) error {
	return &IndexCreateError{Collection: collection, Field: field, Cause: cause}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, key string) error {
	return &NotFoundError{Collection: collection, Key: key}
}

// IsNotAnEntity checks if an error reports an unregistered entity type
func IsNotAnEntity(err error) bool {
	return errors.Is(err, ErrNotAnEntity)
}

// IsCacheReleased checks if an error reports a released entity cache
func IsCacheReleased(err error) bool {
	return errors.Is(err, ErrCacheReleased)
}

// IsInvalidEntity checks if an error reports a failed entity validation
func IsInvalidEntity(err error) bool {
	return errors.Is(err, ErrInvalidEntity)
}

// IsStrategyNotFound checks if an error reports an unresolvable strategy
func IsStrategyNotFound(err error) bool {
	return errors.Is(err, ErrStrategyNotFound)
}

// IsIndexCreate checks if an error reports a rejected index creation
func IsIndexCreate(err error) bool {
	return errors.Is(err, ErrIndexCreate)
}

// IsNotFound checks if an error reports a missing document
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
