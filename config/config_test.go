// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/go68k/config"
	"github.com/beevik/go68k/memory"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go68k.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if c.BatchSize != 5000 || c.TickHz != 256 || c.TimerReload != 0xb2 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if _, ok := c.ModelID(); ok {
		t.Error("default model should be detected from the ROM")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, "model: ti89t\nbatch_size: 100\n")
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.BatchSize != 100 {
		t.Errorf("batch_size incorrect. exp: 100, got: %d", c.BatchSize)
	}
	if c.TickHz != 256 || !c.ClearRAMOnReset {
		t.Errorf("defaults lost: %+v", c)
	}
	if m, ok := c.ModelID(); !ok || m != memory.TI89Titanium {
		t.Errorf("model incorrect. exp: ti89t, got: %v (%v)", m, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := writeFile(t, "batch_size: [1, 2]\n")
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for a malformed file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{"model", func(c *config.Config) { c.Model = "ti83" }},
		{"batch size", func(c *config.Config) { c.BatchSize = 0 }},
		{"tick rate", func(c *config.Config) { c.TickHz = -1 }},
		{"log level", func(c *config.Config) { c.LogLevel = "chatty" }},
	}

	for _, tc := range tests {
		c := config.Default()
		tc.modify(c)
		if err := c.Validate(); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestSaveAndClone(t *testing.T) {
	c := config.Default()
	c.ROM = "ti89.rom"
	c.Model = "v200"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *c {
		t.Errorf("saved config differs: %+v vs %+v", loaded, c)
	}

	clone := c.Clone()
	clone.BatchSize = 1
	if c.BatchSize == 1 {
		t.Error("Clone shares state with the original")
	}
}
