package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := Config{}
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default %+v differs from hardcoded %+v", cfg, Default())
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Physics.PlayerSpeed = 0 }},
		{"negative speed", func(c *Config) { c.Physics.PlayerSpeed = -10 }},
		{"oversized body", func(c *Config) { c.Physics.PlayerSizeRatio = 1.2 }},
		{"zero body", func(c *Config) { c.Physics.PlayerSizeRatio = 0 }},
		{"deadzone at one", func(c *Config) { c.Physics.Deadzone = 1 }},
		{"negative deadzone", func(c *Config) { c.Physics.Deadzone = -0.1 }},
		{"zero slide speed", func(c *Config) { c.Animation.BoxSlideSpeed = 0 }},
		{"zero shatter frames", func(c *Config) { c.Animation.ShatterFrames = 0 }},
		{"zero shatter interval", func(c *Config) { c.Animation.ShatterInterval = 0 }},
		{"tick rate too low", func(c *Config) { c.Game.TickRate = 5 }},
		{"tick rate too high", func(c *Config) { c.Game.TickRate = 500 }},
		{"negative hold", func(c *Config) { c.Game.InputHold = -1 }},
		{"negative delay", func(c *Config) { c.Game.NextLevelDelay = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte("physics:\n  player_speed: 300\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.PlayerSpeed != 300 {
		t.Errorf("PlayerSpeed = %v, expected the override 300", cfg.Physics.PlayerSpeed)
	}
	// Unset keys keep their defaults.
	if cfg.Game.TickRate != Default().Game.TickRate {
		t.Errorf("TickRate = %d, expected the default %d", cfg.Game.TickRate, Default().Game.TickRate)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing custom path")
	}
}

func TestLoadCustomPathInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  player_speed: -5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected a validation error for a negative speed")
	}
}

func TestLoadCustomPathMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}
