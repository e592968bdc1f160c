/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suparena/entitymanager/errors"
)

type stringIDEntity struct {
	id   string `orm:"id"`
	Name string
}

func (e *stringIDEntity) ID() string     { return e.id }
func (e *stringIDEntity) SetID(v string) { e.id = v }
func (e *stringIDEntity) EntityID() any  { return e.id }

type intIDEntity struct {
	id      int64 `orm:"id"`
	version int64 `orm:"version"`
	Score   int64
}

func (e *intIDEntity) ID() int64             { return e.id }
func (e *intIDEntity) SetID(v int64)         { e.id = v }
func (e *intIDEntity) Version() int64        { return e.version }
func (e *intIDEntity) SetVersion(v int64)    { e.version = v }
func (e *intIDEntity) EntityID() any         { return e.id }

type objectIDEntity struct {
	id primitive.ObjectID `orm:"id"`
}

func (e *objectIDEntity) ID() primitive.ObjectID     { return e.id }
func (e *objectIDEntity) SetID(v primitive.ObjectID) { e.id = v }
func (e *objectIDEntity) EntityID() any              { return e.id }

// EntityID is wired to the wrong field.
type miswiredEntity struct {
	id   string `orm:"id"`
	name string
}

func (e *miswiredEntity) ID() string       { return e.id }
func (e *miswiredEntity) SetID(v string)   { e.id = v }
func (e *miswiredEntity) Name() string     { return e.name }
func (e *miswiredEntity) SetName(v string) { e.name = v }
func (e *miswiredEntity) EntityID() any    { return e.name }

type badAccessorEntity struct {
	id string `orm:"id"`
}

func (e *badAccessorEntity) ID() int        { return 0 }
func (e *badAccessorEntity) SetID(v string) { e.id = v }
func (e *badAccessorEntity) EntityID() any  { return e.id }

type exportedIDEntity struct {
	ID string `orm:"id"`
}

func (e *exportedIDEntity) EntityID() any { return e.ID }

type twoIDEntity struct {
	id    string `orm:"id"`
	altID string `orm:"id"`
}

func (e *twoIDEntity) ID() string        { return e.id }
func (e *twoIDEntity) SetID(v string)    { e.id = v }
func (e *twoIDEntity) AltID() string     { return e.altID }
func (e *twoIDEntity) SetAltID(v string) { e.altID = v }
func (e *twoIDEntity) EntityID() any     { return e.id }

type boolIDEntity struct {
	id bool `orm:"id"`
}

func (e *boolIDEntity) ID() bool       { return e.id }
func (e *boolIDEntity) SetID(v bool)   { e.id = v }
func (e *boolIDEntity) EntityID() any  { return e.id }

type notAnEntityAtAll struct {
	id string `orm:"id"`
}

func (e *notAnEntityAtAll) ID() string     { return e.id }
func (e *notAnEntityAtAll) SetID(v string) { e.id = v }

type twoVersionEntity struct {
	id string `orm:"id"`
	v1 int64  `orm:"version"`
	v2 int64  `orm:"version"`
}

func (e *twoVersionEntity) ID() string     { return e.id }
func (e *twoVersionEntity) SetID(v string) { e.id = v }
func (e *twoVersionEntity) V1() int64      { return e.v1 }
func (e *twoVersionEntity) SetV1(v int64)  { e.v1 = v }
func (e *twoVersionEntity) V2() int64      { return e.v2 }
func (e *twoVersionEntity) SetV2(v int64)  { e.v2 = v }
func (e *twoVersionEntity) EntityID() any  { return e.id }

type int32VersionEntity struct {
	id      string `orm:"id"`
	version int32  `orm:"version"`
}

func (e *int32VersionEntity) ID() string          { return e.id }
func (e *int32VersionEntity) SetID(v string)      { e.id = v }
func (e *int32VersionEntity) Version() int32      { return e.version }
func (e *int32VersionEntity) SetVersion(v int32)  { e.version = v }
func (e *int32VersionEntity) EntityID() any       { return e.id }

func TestCheckIdentity(t *testing.T) {
	t.Run("StringID", func(t *testing.T) {
		field, err := CheckIdentity(reflect.TypeOf(stringIDEntity{}))
		if err != nil {
			t.Fatalf("CheckIdentity failed: %v", err)
		}
		if field != "id" {
			t.Errorf("Expected field 'id', got %q", field)
		}
	})

	t.Run("Int64ID", func(t *testing.T) {
		if _, err := CheckIdentity(reflect.TypeOf(intIDEntity{})); err != nil {
			t.Fatalf("CheckIdentity failed: %v", err)
		}
	})

	t.Run("ObjectID", func(t *testing.T) {
		if _, err := CheckIdentity(reflect.TypeOf(objectIDEntity{})); err != nil {
			t.Fatalf("CheckIdentity failed: %v", err)
		}
	})

	t.Run("PointerTypeAccepted", func(t *testing.T) {
		if _, err := CheckIdentity(reflect.TypeOf(&stringIDEntity{})); err != nil {
			t.Fatalf("CheckIdentity failed for pointer type: %v", err)
		}
	})
}

func TestCheckIdentityErrors(t *testing.T) {
	tests := []struct {
		name    string
		typ     reflect.Type
		message string
	}{
		{"MiswiredEntityID", reflect.TypeOf(miswiredEntity{}), "EntityID() does not return the id field value"},
		{"AccessorReturnsWrongType", reflect.TypeOf(badAccessorEntity{}), "must take no arguments and return exactly string"},
		{"ExportedID", reflect.TypeOf(exportedIDEntity{}), "must be unexported"},
		{"TwoIDFields", reflect.TypeOf(twoIDEntity{}), "exactly one id field"},
		{"UnsupportedIDType", reflect.TypeOf(boolIDEntity{}), "id field only supports"},
		{"NoEntityInterface", reflect.TypeOf(notAnEntityAtAll{}), "does not implement the Entity interface"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckIdentity(tt.typ)
			if err == nil {
				t.Fatal("Expected an identity error")
			}
			if !errors.IsInvalidEntity(err) {
				t.Errorf("Expected ErrInvalidEntity, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error containing %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	t.Run("DeclaredVersion", func(t *testing.T) {
		field, err := CheckVersion(reflect.TypeOf(intIDEntity{}))
		if err != nil {
			t.Fatalf("CheckVersion failed: %v", err)
		}
		if field != "version" {
			t.Errorf("Expected field 'version', got %q", field)
		}
	})

	t.Run("NoVersionIsFine", func(t *testing.T) {
		field, err := CheckVersion(reflect.TypeOf(stringIDEntity{}))
		if err != nil {
			t.Fatalf("CheckVersion failed: %v", err)
		}
		if field != "" {
			t.Errorf("Expected no version field, got %q", field)
		}
	})

	t.Run("TwoVersionFields", func(t *testing.T) {
		_, err := CheckVersion(reflect.TypeOf(twoVersionEntity{}))
		if err == nil || !strings.Contains(err.Error(), "only one version field") {
			t.Fatalf("Expected only-one-version error, got %v", err)
		}
	})

	t.Run("WrongVersionType", func(t *testing.T) {
		_, err := CheckVersion(reflect.TypeOf(int32VersionEntity{}))
		if err == nil || !strings.Contains(err.Error(), "must be of type int64") {
			t.Fatalf("Expected int64 type error, got %v", err)
		}
	})
}
