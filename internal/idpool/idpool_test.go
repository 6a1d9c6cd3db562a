// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package idpool_test

import (
	"testing"

	"github.com/dlexlang/dlex/internal/idpool"
	"github.com/dlexlang/dlex/token"
)

func TestLookupInternsBySpelling(t *testing.T) {
	p := idpool.New()
	id1, kind1 := p.Lookup("foo")
	id2, kind2 := p.Lookup("foo")
	if id1 != id2 {
		t.Errorf("two lookups of 'foo' returned different ids: %d vs %d", id1, id2)
	}
	if kind1 != token.IDENTIFIER || kind2 != token.IDENTIFIER {
		t.Errorf("kind = %s/%s, want IDENTIFIER", kind1, kind2)
	}
}

func TestLookupDistinguishesSpellings(t *testing.T) {
	p := idpool.New()
	idFoo, _ := p.Lookup("foo")
	idBar, _ := p.Lookup("bar")
	if idFoo == idBar {
		t.Error("'foo' and 'bar' received the same identity")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestLookupResolvesKeywordKind(t *testing.T) {
	p := idpool.New()
	_, kind := p.Lookup("return")
	if kind != token.RETURN {
		t.Errorf("kind = %s, want RETURN", kind)
	}
}
