/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suparena/entitymanager/errors"
)

var (
	byteSliceType = reflect.TypeOf([]byte(nil))
	timeType      = reflect.TypeOf(time.Time{})
	dateTimeType  = reflect.TypeOf(strfmt.DateTime{})
	objectIDType  = reflect.TypeOf(primitive.ObjectID{})
)

const xsyncPkgPath = "github.com/puzpuzpuz/xsync/v3"

// Validate walks the reachable field graph of the entity struct type t and
// reports whether it contains a collection unsafe for shared concurrent
// access. Shape violations the cache cannot support at all are returned as
// errors matching errors.ErrInvalidEntity.
//
// Validation is a pure function of the type: running it twice yields the
// same result.
func Validate(t reflect.Type) (unsafe bool, err error) {
	w := &walker{
		visiting: make(map[reflect.Type]bool),
		memo:     make(map[reflect.Type]bool),
	}
	return w.walkStruct(derefType(t))
}

// walker memoizes visited struct types so self-referential entities terminate.
type walker struct {
	visiting map[reflect.Type]bool
	memo     map[reflect.Type]bool
}

func (w *walker) walkStruct(t reflect.Type) (bool, error) {
	if u, ok := w.memo[t]; ok {
		return u, nil
	}
	if w.visiting[t] {
		// Cycle back to a type already on the stack; it contributes nothing new.
		return false, nil
	}
	w.visiting[t] = true
	defer delete(w.visiting, t)

	if t.Kind() != reflect.Struct {
		return false, errors.NewDefinitionError(typeName(t), "", "entity type must be a struct")
	}
	if strings.Contains(t.Name(), "[") {
		return false, errors.NewDefinitionError(typeName(t), "", "must not be a generic type")
	}

	hasUnsafe := false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if role, _ := fieldRole(f); role == "-" {
			continue
		}

		// Unexported fields are only reachable through methods, so the type
		// must provide both an accessor and a mutator for them.
		if !f.IsExported() {
			ptr := reflect.PointerTo(t)
			if _, ok := accessorMethod(ptr, f.Name); !ok {
				return false, errors.NewDefinitionError(typeName(t), f.Name, "unexported field needs an accessor method")
			}
			if _, ok := mutatorMethod(ptr, f.Name); !ok {
				return false, errors.NewDefinitionError(typeName(t), f.Name, "unexported field needs a mutator method")
			}
		}

		ft := derefType(f.Type)
		switch {
		case isBaseType(ft) || isLeafType(ft):
			// Leaf value, nothing to recurse into.

		case ft == byteSliceType:
			// One-dimensional byte payloads are the only raw array shape
			// the document codecs support.

		case ft.Kind() == reflect.Array:
			if ft.Elem().Kind() != reflect.Uint8 {
				return false, errors.NewDefinitionError(typeName(t), f.Name, "array fields only support byte elements")
			}

		case ft.Kind() == reflect.Slice:
			// Plain slice: the mutable, non-concurrent list implementation.
			hasUnsafe = true
			u, err := w.walkElem(t, f.Name, ft.Elem())
			if err != nil {
				return false, err
			}
			hasUnsafe = hasUnsafe || u

		case ft.Kind() == reflect.Map:
			hasUnsafe = true
			if !isBaseType(ft.Key()) {
				return false, errors.NewDefinitionError(typeName(t), f.Name, "map keys must be a base type")
			}
			u, err := w.walkElem(t, f.Name, ft.Elem())
			if err != nil {
				return false, err
			}
			hasUnsafe = hasUnsafe || u

		case isConcurrentSafe(ft):
			// Concurrency-safe container, treated as opaque.

		case ft.Kind() == reflect.Struct:
			u, err := w.walkStruct(ft)
			if err != nil {
				return false, err
			}
			hasUnsafe = hasUnsafe || u

		case ft.Kind() == reflect.Interface:
			return false, errors.NewDefinitionError(typeName(t), f.Name, "not a generic type, fields must be concretely typed")

		default:
			return false, errors.NewDefinitionError(typeName(t), f.Name, "unsupported field type "+ft.String())
		}
	}

	w.memo[t] = hasUnsafe
	return hasUnsafe, nil
}

// walkElem validates a type nested inside a collection.
func (w *walker) walkElem(owner reflect.Type, field string, t reflect.Type) (bool, error) {
	t = derefType(t)
	switch {
	case t.Kind() == reflect.Interface:
		return false, errors.NewDefinitionError(typeName(owner), field, "not a generic type, collection elements must be concretely typed")

	case isBaseType(t) || isLeafType(t):
		return false, nil

	case t == byteSliceType || t.Kind() == reflect.Array:
		return false, errors.NewDefinitionError(typeName(owner), field, "arrays nested in collections are not supported")

	case t.Kind() == reflect.Slice:
		// The nested plain slice already marks the branch unsafe.
		_, err := w.walkElem(owner, field, t.Elem())
		return true, err

	case t.Kind() == reflect.Map:
		if !isBaseType(t.Key()) {
			return false, errors.NewDefinitionError(typeName(owner), field, "map keys must be a base type")
		}
		_, err := w.walkElem(owner, field, t.Elem())
		return true, err

	case isConcurrentSafe(t):
		return false, nil

	case t.Kind() == reflect.Struct:
		return w.walkStruct(t)

	default:
		return false, errors.NewDefinitionError(typeName(owner), field, "unsupported collection element type "+t.String())
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// isBaseType reports whether t is a primitive, numeric or string type,
// treated as a leaf in structural validation.
func isBaseType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

// isLeafType reports whether t is a special type never recursed into:
// timestamps and the store-generated opaque identifier.
func isLeafType(t reflect.Type) bool {
	return t == timeType || t == dateTimeType || t == objectIDType
}

// isConcurrentSafe reports whether t is one of the known concurrency-safe
// container types. Fields of these types do not disqualify lock-free caching.
func isConcurrentSafe(t reflect.Type) bool {
	if t.PkgPath() == "sync" && t.Name() == "Map" {
		return true
	}
	if t.PkgPath() == xsyncPkgPath {
		return t.Name() == "Map" || strings.HasPrefix(t.Name(), "MapOf[")
	}
	return false
}

// accessorMethod finds the conventional accessor for an unexported field,
// accepting both plain capitalization and the initialism form for short
// names (id -> Id or ID).
func accessorMethod(ptr reflect.Type, field string) (reflect.Method, bool) {
	for _, name := range accessorNames(field) {
		if m, ok := ptr.MethodByName(name); ok {
			return m, true
		}
	}
	return reflect.Method{}, false
}

func mutatorMethod(ptr reflect.Type, field string) (reflect.Method, bool) {
	for _, name := range accessorNames(field) {
		if m, ok := ptr.MethodByName("Set" + name); ok {
			return m, true
		}
	}
	return reflect.Method{}, false
}

func accessorNames(field string) []string {
	capitalized := strings.ToUpper(field[:1]) + field[1:]
	if len(field) <= 3 {
		upper := strings.ToUpper(field)
		if upper != capitalized {
			return []string{capitalized, upper}
		}
	}
	return []string{capitalized}
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
