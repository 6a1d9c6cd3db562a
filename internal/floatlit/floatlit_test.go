// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package floatlit_test

import (
	"testing"

	"github.com/dlexlang/dlex/internal/floatlit"
)

func TestParseDecimal(t *testing.T) {
	v, outOfRange := floatlit.Parse("3.14")
	if outOfRange {
		t.Fatal("3.14 reported out of range")
	}
	if v != 3.14 {
		t.Errorf("value = %v, want 3.14", v)
	}
}

func TestParseHexFloat(t *testing.T) {
	v, outOfRange := floatlit.Parse("0x1.8p3")
	if outOfRange {
		t.Fatal("0x1.8p3 reported out of range")
	}
	if v != 12 {
		t.Errorf("value = %v, want 12", v)
	}
}

func TestParseOutOfRange(t *testing.T) {
	_, outOfRange := floatlit.Parse("1e400")
	if !outOfRange {
		t.Error("1e400 should be reported out of range for float64")
	}
}

func TestIsFloat32OutOfRange(t *testing.T) {
	if floatlit.IsFloat32OutOfRange("1.0") {
		t.Error("1.0 should fit in float32")
	}
	if !floatlit.IsFloat32OutOfRange("1e40") {
		t.Error("1e40 should not fit in float32")
	}
}
