/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"reflect"
	"testing"
)

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	Register[stringIDEntity](WithCacheStrategy("tenMinute"))
	Register[*intIDEntity](WithCache())
	Register[objectIDEntity]()

	// Duplicate registration: first wins.
	Register[stringIDEntity](WithCacheStrategy("other"))

	regs := Discover()
	if len(regs) != 3 {
		t.Fatalf("Expected 3 registrations, got %d", len(regs))
	}

	byType := make(map[reflect.Type]Registration)
	for _, reg := range regs {
		if reg.Type.Kind() == reflect.Pointer {
			t.Errorf("Registration stored a pointer type: %s", reg.Type)
		}
		byType[reg.Type] = reg
	}

	sr := byType[reflect.TypeOf(stringIDEntity{})]
	if !sr.Cached || sr.CacheStrategy != "tenMinute" {
		t.Errorf("Expected first registration to win, got %+v", sr)
	}

	ir := byType[reflect.TypeOf(intIDEntity{})]
	if !ir.Cached || ir.CacheStrategy != "" {
		t.Errorf("Expected cached registration without a named strategy, got %+v", ir)
	}

	or := byType[reflect.TypeOf(objectIDEntity{})]
	if or.Cached {
		t.Errorf("Expected plain registration to be uncached, got %+v", or)
	}
}

func TestDiscoverIsDeterministic(t *testing.T) {
	Reset()
	defer Reset()

	Register[objectIDEntity]()
	Register[stringIDEntity]()
	Register[intIDEntity]()

	first := Discover()
	second := Discover()
	if len(first) != len(second) {
		t.Fatalf("Snapshot lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type {
			t.Errorf("Order differs at %d: %s vs %s", i, first[i].Type, second[i].Type)
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Type.String() >= first[i].Type.String() {
			t.Errorf("Snapshot not sorted at %d: %s before %s", i, first[i-1].Type, first[i].Type)
		}
	}
}
