// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlexlang/dlex/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.DocComments)
	assert.False(t, cfg.CommentTokens)
	assert.NotEmpty(t, cfg.Vendor)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "DocComments = false\nVendor = \"acme\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(path)
	assert.NoError(t, err)
	assert.False(t, loaded.DocComments)
	assert.Equal(t, "acme", loaded.Vendor)
	// Omitted fields keep Default()'s values.
	assert.Equal(t, config.Default().CompilerVersion, loaded.CompilerVersion)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "NotARealField = true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := config.Load(path)
	assert.Error(t, err)
}
