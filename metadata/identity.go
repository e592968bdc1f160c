/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"math/rand/v2"
	"reflect"
	"unsafe"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suparena/entitymanager/errors"
)

var entityInterfaceType = reflect.TypeOf((*Entity)(nil)).Elem()

// CheckIdentity validates the identity field of the entity struct type t and
// returns its Go field name. The rules mirror what the persistence layer
// relies on: exactly one field tagged `orm:"id"`, unexported so it is only
// reachable through its accessor, an accessor returning exactly the field
// type, and an EntityID() implementation wired to that same field.
//
// The wiring is verified at runtime: a random value of the id's kind is
// written straight into the field of a throwaway instance and compared with
// what EntityID() returns. A miswired accessor fails startup here instead of
// corrupting documents later.
func CheckIdentity(t reflect.Type) (string, error) {
	t = derefType(t)
	ptr := reflect.PointerTo(t)
	if !ptr.Implements(entityInterfaceType) {
		return "", errors.NewDefinitionError(typeName(t), "", "does not implement the Entity interface")
	}

	var idField reflect.StructField
	count := 0
	for i := 0; i < t.NumField(); i++ {
		if role, _ := fieldRole(t.Field(i)); role == "id" {
			idField = t.Field(i)
			count++
		}
	}
	if count != 1 {
		return "", errors.NewDefinitionError(typeName(t), "", "must have exactly one id field")
	}
	if idField.IsExported() {
		return "", errors.NewDefinitionError(typeName(t), idField.Name, "id field must be unexported, expose it through its accessor")
	}

	accessor, ok := accessorMethod(ptr, idField.Name)
	if !ok {
		return "", errors.NewDefinitionError(typeName(t), idField.Name, "id field needs an accessor method")
	}
	// Method type includes the receiver as the first parameter.
	if accessor.Type.NumIn() != 1 || accessor.Type.NumOut() != 1 || accessor.Type.Out(0) != idField.Type {
		return "", errors.NewDefinitionError(typeName(t), idField.Name,
			"accessor "+accessor.Name+" must take no arguments and return exactly "+idField.Type.String())
	}

	want, err := randomIDValue(t, idField.Type)
	if err != nil {
		return "", err
	}

	inst := reflect.New(t)
	fv := inst.Elem().FieldByIndex(idField.Index)
	setUnexported(fv, want)

	got := inst.Interface().(Entity).EntityID()
	if !reflect.DeepEqual(want.Interface(), got) {
		return "", errors.NewDefinitionError(typeName(t), idField.Name,
			"EntityID() does not return the id field value, check the accessor wiring")
	}
	return idField.Name, nil
}

// CheckVersion validates the optional version field of t and returns its Go
// field name, or an empty string when the entity declares none. The version
// drives optimistic-concurrency conflict detection in the persistence layer,
// so its type must be exactly int64.
func CheckVersion(t reflect.Type) (string, error) {
	t = derefType(t)

	var versionField reflect.StructField
	count := 0
	for i := 0; i < t.NumField(); i++ {
		if role, _ := fieldRole(t.Field(i)); role == "version" {
			versionField = t.Field(i)
			count++
		}
	}
	if count == 0 {
		return "", nil
	}
	if count > 1 {
		return "", errors.NewDefinitionError(typeName(t), "", "must have only one version field")
	}
	if versionField.IsExported() {
		return "", errors.NewDefinitionError(typeName(t), versionField.Name, "version field must be unexported")
	}
	if versionField.Type != reflect.TypeOf(int64(0)) {
		return "", errors.NewDefinitionError(typeName(t), versionField.Name, "version field must be of type int64")
	}
	return versionField.Name, nil
}

// randomIDValue produces a random value matching the id field's kind.
func randomIDValue(owner, ft reflect.Type) (reflect.Value, error) {
	switch {
	case ft == objectIDType:
		return reflect.ValueOf(primitive.NewObjectID()), nil
	case ft.Kind() == reflect.String:
		return reflect.ValueOf(uuid.NewString()).Convert(ft), nil
	case ft.Kind() == reflect.Int || ft.Kind() == reflect.Int32:
		return reflect.ValueOf(int64(rand.Int32())).Convert(ft), nil
	case ft.Kind() == reflect.Int64:
		return reflect.ValueOf(rand.Int64()).Convert(ft), nil
	case ft.Kind() == reflect.Float32 || ft.Kind() == reflect.Float64:
		return reflect.ValueOf(rand.Float64()).Convert(ft), nil
	}
	return reflect.Value{}, errors.NewDefinitionError(typeName(owner), "",
		"id field only supports int, int32, int64, float32, float64, string and primitive.ObjectID")
}

// setUnexported writes v into an unexported struct field. The field comes
// from a freshly built addressable instance, so re-deriving the value through
// its address is safe.
func setUnexported(fv reflect.Value, v reflect.Value) {
	reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem().Set(v)
}
