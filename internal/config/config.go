// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the optional YAML configuration file.
//
// Every field mirrors a command-line flag; flags and environment variables
// take precedence over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps [time.Duration] so it can be written as "5m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the YAML configuration file contents.
type Config struct {
	// Query is the search phrase sent to the news API.
	Query string `yaml:"query"`
	// Lang is the article language code.
	Lang string `yaml:"lang"`
	// Interval is the delay between poll cycles in loop mode.
	Interval Duration `yaml:"interval"`
	// BootstrapCount caps posts per cycle until the first successful run.
	BootstrapCount int `yaml:"bootstrap_count"`
	// StatePath is where bot state is persisted.
	StatePath string `yaml:"state"`
	// PauseFile pauses polling while it exists.
	PauseFile string `yaml:"pause_file"`
	// Feeds are supplemental RSS/Atom feed URLs.
	Feeds []string `yaml:"feeds"`
	// RulesPath points to a Starlark rules file.
	RulesPath string `yaml:"rules"`
	// GeminiModel is the model used for summaries.
	GeminiModel string `yaml:"gemini_model"`
	// LogFile duplicates logs to a rotated file.
	LogFile string `yaml:"log_file"`
}

// Load reads and parses the configuration file at path. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}
