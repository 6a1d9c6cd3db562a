// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package entity_test

import (
	"testing"

	"github.com/dlexlang/dlex/internal/entity"
)

func TestLookupKnown(t *testing.T) {
	cases := map[string]rune{
		"amp":   '&',
		"copy":  0xA9,
		"times": 0xD7,
	}
	for name, want := range cases {
		r, ok := entity.Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): ok = false, want true", name)
			continue
		}
		if r != want {
			t.Errorf("Lookup(%q) = %U, want %U", name, r, want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := entity.Lookup("not_a_real_entity_name"); ok {
		t.Error("expected ok = false for an unknown entity name")
	}
}
