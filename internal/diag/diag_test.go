// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package diag_test

import (
	"testing"

	"github.com/dlexlang/dlex/internal/diag"
	"github.com/dlexlang/dlex/token"
)

func TestCollectorAccumulates(t *testing.T) {
	var c diag.Collector
	loc := token.Position{Filename: "f.d", Line: 1, Column: 1}
	c.Error(loc, "bad token %q", "@@")
	c.Deprecation(loc, "old syntax")

	if len(c.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(c.Errors))
	}
	if c.Errors[0].Msg != `bad token "@@"` {
		t.Errorf("Msg = %q", c.Errors[0].Msg)
	}
	if len(c.Deprecations) != 1 {
		t.Fatalf("Deprecations = %d, want 1", len(c.Deprecations))
	}
}
