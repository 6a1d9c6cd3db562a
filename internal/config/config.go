// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package config loads the lexer's feature toggles and special-identifier
// substitution values from a TOML file, mirroring cmd/gprobe/config.go's
// strict-field tomlSettings (no case folding, deprecated-field warnings via
// MissingField) — this module's own version of that pattern, scaled down.
package config

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/dlexlang/dlex/internal/xlog"
)

// Config controls lexer behavior that spec.md §6/§7 treats as externally
// configurable: doc-comment harvesting, comment tokenization, whether
// deprecations are promoted to errors, and the __VENDOR__/__VERSION__
// substitution values (spec.md §4.3).
type Config struct {
	DocComments               bool   `toml:"DocComments"`
	CommentTokens             bool   `toml:"CommentTokens"`
	TreatDeprecationsAsErrors bool   `toml:"TreatDeprecationsAsErrors"`
	Vendor                    string `toml:"Vendor"`
	CompilerVersion           string `toml:"CompilerVersion"`
}

// Default returns the configuration a freshly constructed Lexer uses absent
// any file: doc comments on, comment tokens off, deprecations non-fatal.
func Default() Config {
	return Config{
		DocComments:     true,
		CommentTokens:   false,
		Vendor:          "dlex",
		CompilerVersion: "1.0.0",
	}
}

// tomlSettings mirrors cmd/gprobe/config.go: field names are matched
// verbatim (no normalization), and an unrecognized field is only a warning,
// not a fatal error, once it's on the deprecated list.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecated[id] {
			xlog.Warn("Config field is deprecated and won't have an effect", "name", id)
			return nil
		}
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// deprecated lists config fields accepted for backward compatibility but no
// longer consulted by the lexer.
var deprecated = map[string]bool{
	"Config.EnableNestedComments": true,
}

// Load reads and decodes a TOML config file, starting from Default() so an
// omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	if err := tomlSettings.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
