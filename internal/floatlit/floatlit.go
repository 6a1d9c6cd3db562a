// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package floatlit implements the "float parser" collaborator contract from
// spec.md §6: parse(ascii, &outOfRange) -> real, plus the two range
// predicates IsFloat32OutOfRange / IsFloat64OutOfRange. strconv.ParseFloat
// is a correctly-rounded decimal *and* hex-float ("0x1.8p3") parser since Go
// 1.13, which is exactly spec.md §4.4's "hex mantissa and binary exponent"
// requirement — no ecosystem library improves on the standard library here.
package floatlit

import (
	"math"
	"strconv"
)

// Parse converts ascii (a decimal or hex-float literal, underscores already
// stripped by the caller) to its nearest float64 value. outOfRange is set
// when the magnitude overflows float64 (strconv reports ErrRange).
func Parse(ascii string) (value float64, outOfRange bool) {
	v, err := strconv.ParseFloat(ascii, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		// Malformed input shouldn't reach here since the lexer only calls
		// Parse on digit runs it has already validated; fall back to 0.
		return 0, false
	}
	return v, false
}

// IsFloat32OutOfRange reports whether ascii's value exceeds what a float32
// can represent.
func IsFloat32OutOfRange(ascii string) bool {
	v, err := strconv.ParseFloat(ascii, 32)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return true
		}
		return false
	}
	return math.IsInf(float64(float32(v)), 0) && !math.IsInf(v, 0)
}

// IsFloat64OutOfRange reports whether ascii's value exceeds what a float64
// can represent.
func IsFloat64OutOfRange(ascii string) bool {
	_, err := strconv.ParseFloat(ascii, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return true
		}
	}
	return false
}
