// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag implements the "diagnostic sink" collaborator contract from
// spec.md §6/§7: verror(loc, format, args), vdeprecation(loc, format,
// args). The lexer itself only ever calls through the Sink interface and
// tracks its own sticky Errors flag (spec.md §7); this package supplies the
// default Sink, which renders through internal/xlog.
package diag

import (
	"fmt"

	"github.com/dlexlang/dlex/internal/xlog"
	"github.com/dlexlang/dlex/token"
)

// Sink receives lexical diagnostics. A host compiler may substitute its own
// implementation (e.g. one that accumulates a structured error list instead
// of logging); Lexer only depends on this interface.
type Sink interface {
	Error(loc token.Position, format string, args ...interface{})
	Deprecation(loc token.Position, format string, args ...interface{})
}

// LogSink is the default Sink, logging through internal/xlog with the
// source position attached as context — the nearest equivalent of the
// teacher's own verror/vdeprecation call sites, which print "file:line:col:
// message".
type LogSink struct {
	// Tag is an optional correlation value (e.g. a per-Lexer UUID, see
	// cmd/dlex) attached to every record so multi-file runs can be told
	// apart in logs.
	Tag string
}

func (s LogSink) Error(loc token.Position, format string, args ...interface{}) {
	xlog.Error(fmt.Sprintf(format, args...), "loc", loc.String(), "tag", s.Tag)
}

func (s LogSink) Deprecation(loc token.Position, format string, args ...interface{}) {
	xlog.Warn(fmt.Sprintf(format, args...), "loc", loc.String(), "tag", s.Tag, "kind", "deprecation")
}

// Collector is a Sink that accumulates diagnostics in memory instead of
// logging them, useful for tests and for the cmd/dlex `check` command.
type Collector struct {
	Errors        []Diagnostic
	Deprecations  []Diagnostic
}

// Diagnostic is one recorded message.
type Diagnostic struct {
	Loc token.Position
	Msg string
}

func (c *Collector) Error(loc token.Position, format string, args ...interface{}) {
	c.Errors = append(c.Errors, Diagnostic{Loc: loc, Msg: fmt.Sprintf(format, args...)})
}

func (c *Collector) Deprecation(loc token.Position, format string, args ...interface{}) {
	c.Deprecations = append(c.Deprecations, Diagnostic{Loc: loc, Msg: fmt.Sprintf(format, args...)})
}
