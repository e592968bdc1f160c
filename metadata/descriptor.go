/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"strings"

	"github.com/suparena/entitymanager/errors"
)

// Descriptor carries the statically declared metadata of an entity type:
// identity and version fields plus the declared index specifications.
// Descriptors are built once during initialization and never mutated.
type Descriptor struct {
	Type         reflect.Type
	IDField      string
	VersionField string
	Indexes      map[string]IndexSpec
	TextIndexes  map[string]TextIndexSpec
}

// Describe validates the identity and version fields of t and collects its
// declared indexes. Index keys are the document field names the store will
// see, derived from the bson or json tag when present.
func Describe(t reflect.Type) (*Descriptor, error) {
	t = derefType(t)

	idField, err := CheckIdentity(t)
	if err != nil {
		return nil, err
	}
	versionField, err := CheckVersion(t)
	if err != nil {
		return nil, err
	}

	indexes := make(map[string]IndexSpec)
	textIndexes := make(map[string]TextIndexSpec)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		role, opts := fieldRole(f)
		switch role {
		case "index":
			spec := IndexSpec{Ascending: true}
			for _, opt := range opts {
				switch opt {
				case "unique":
					spec.Unique = true
				case "descending":
					spec.Ascending = false
				case "ascending":
					// default
				default:
					return nil, errors.NewDefinitionError(typeName(t), f.Name, "unknown index option "+opt)
				}
			}
			indexes[docFieldName(f)] = spec
		case "textindex":
			name := docFieldName(f)
			textIndexes[name] = TextIndexSpec{Field: name}
		}
	}

	// A collection can have only one text index.
	if len(textIndexes) > 1 {
		return nil, errors.NewDefinitionError(typeName(t), "", "a collection can have only one text index")
	}

	return &Descriptor{
		Type:         t,
		IDField:      idField,
		VersionField: versionField,
		Indexes:      indexes,
		TextIndexes:  textIndexes,
	}, nil
}

// fieldRole parses the `orm` struct tag into its role and options.
// Known roles: id, version, index, textindex and "-" for transient fields.
func fieldRole(f reflect.StructField) (string, []string) {
	tag := f.Tag.Get("orm")
	if tag == "" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

// docFieldName returns the name a field carries in stored documents:
// the bson tag, then the json tag, then the Go field name.
func docFieldName(f reflect.StructField) string {
	for _, key := range []string{"bson", "json"} {
		if tag := f.Tag.Get(key); tag != "" {
			if name := strings.Split(tag, ",")[0]; name != "" && name != "-" {
				return name
			}
		}
	}
	return f.Name
}
