// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package utf8dec_test

import (
	"testing"

	"github.com/dlexlang/dlex/internal/utf8dec"
)

func TestDecodeASCII(t *testing.T) {
	r, size, msg := utf8dec.Decode([]byte("a"), 0)
	if msg != "" {
		t.Fatalf("unexpected message: %s", msg)
	}
	if r != 'a' || size != 1 {
		t.Errorf("got (%q, %d), want ('a', 1)", r, size)
	}
}

func TestDecodeMultiByte(t *testing.T) {
	buf := []byte("café")
	r, size, msg := utf8dec.Decode(buf, 3) // 'é' starts at byte index 3
	if msg != "" {
		t.Fatalf("unexpected message: %s", msg)
	}
	if r != 'é' || size != 2 {
		t.Errorf("got (%q, %d), want ('é', 2)", r, size)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, size, msg := utf8dec.Decode([]byte{0xFF}, 0)
	if msg == "" {
		t.Error("expected a diagnostic message for an invalid byte")
	}
	if size != 1 {
		t.Errorf("size = %d, want 1 (forward progress on error)", size)
	}
}

func TestIsLineSeparator(t *testing.T) {
	if !utf8dec.IsLineSeparator(utf8dec.LineSeparator) {
		t.Error("LineSeparator should report true")
	}
	if !utf8dec.IsLineSeparator(utf8dec.ParagraphSeparator) {
		t.Error("ParagraphSeparator should report true")
	}
	if utf8dec.IsLineSeparator('a') {
		t.Error("'a' should not be a line separator")
	}
}

func TestAppendRuneRoundTrips(t *testing.T) {
	got := utf8dec.AppendRune(nil, 'é')
	want := []byte("é")
	if string(got) != string(want) {
		t.Errorf("AppendRune = %x, want %x", got, want)
	}
}
