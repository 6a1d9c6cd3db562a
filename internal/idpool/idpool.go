// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package idpool implements the "intern pool" collaborator contract from
// spec.md §6: idPool(bytes, len) -> (identity, kind). It generalizes the
// teacher's token.LookupIdent/keywords map (probe-lang/lang/token/token.go)
// from a single global keyword table into a pool that also hands out a
// stable identity for every distinct spelling it has seen, scoped to one
// Pool instance so concurrent lexers never share mutable interning state
// (see DESIGN.md Open Question 3).
package idpool

import "github.com/dlexlang/dlex/token"

// Pool canonicalizes identifier spellings to a stable Identifier and
// resolves keyword kind. The zero value is not usable; construct with New.
type Pool struct {
	ids  map[string]token.Identifier
	next token.Identifier
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{ids: make(map[string]token.Identifier, 64)}
}

// Lookup canonicalizes name (the identifier's exact spelling) to an
// Identifier, allocating a new one on first sight, and resolves its token
// Kind: a keyword's own Kind, or token.IDENTIFIER for everything else.
func (p *Pool) Lookup(name string) (token.Identifier, token.Kind) {
	kind := token.IDENTIFIER
	if kw, ok := token.LookupKeyword(name); ok {
		kind = kw
	}
	if id, ok := p.ids[name]; ok {
		return id, kind
	}
	p.next++
	id := p.next
	p.ids[name] = id
	return id, kind
}

// Len reports how many distinct spellings have been interned, for tests and
// diagnostics.
func (p *Pool) Len() int { return len(p.ids) }
