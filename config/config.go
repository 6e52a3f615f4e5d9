// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the emulator configuration and its YAML file
// format.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/go68k/memory"
	"github.com/beevik/go68k/port"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// AutoModel selects the model from the ROM header.
const AutoModel = "auto"

// Config holds the emulator settings.
type Config struct {
	// Model is the calculator model: auto, ti92p, ti89, v200 or ti89t.
	Model string `yaml:"model"`

	// ROM is the path of the raw ROM dump.
	ROM string `yaml:"rom"`

	// BatchSize is the number of instructions run per batch.
	BatchSize int `yaml:"batch_size"`

	// TickHz is the rate of the periodic driver.
	TickHz int `yaml:"tick_hz"`

	// ClearRAMOnReset zeroes RAM whenever the machine resets.
	ClearRAMOnReset bool `yaml:"clear_ram_on_reset"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`

	// TimerReload is the initial programmable timer reload value.
	TimerReload uint8 `yaml:"timer_reload"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Model:           AutoModel,
		BatchSize:       5000,
		TickHz:          256,
		ClearRAMOnReset: true,
		LogLevel:        "info",
		TimerReload:     port.DefaultTimerReload,
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return c, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Model != AutoModel {
		if _, err := memory.ParseModel(c.Model); err != nil {
			return fmt.Errorf("%w: model: %v", ErrInvalid, err)
		}
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0", ErrInvalid)
	}
	if c.TickHz <= 0 || c.TickHz > 100000 {
		return fmt.Errorf("%w: tick_hz must be in 1-100000", ErrInvalid)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

// ModelID returns the configured model. The second return value is false
// when the model is detected from the ROM.
func (c *Config) ModelID() (memory.Model, bool) {
	if c.Model == AutoModel {
		return 0, false
	}
	m, err := memory.ParseModel(c.Model)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
