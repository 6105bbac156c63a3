package config

import (
	_ "embed"
)

//go:embed defaults/warehouse.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration. It mirrors the
// embedded defaults/warehouse.yaml; the YAML is the documented reference,
// this is the last-resort fallback.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			PlayerSpeed:     220.0,
			PlayerSizeRatio: 0.7,
			Deadzone:        0.2,
		},
		Animation: AnimationConfig{
			BoxSlideSpeed:   10.0,
			ShatterFrames:   5,
			ShatterInterval: 0.1,
		},
		Game: GameConfig{
			TickRate:       60,
			InputHold:      0.15,
			NextLevelDelay: 1.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `config show`-style
// output and for seeding a user config file.
func DefaultYAML() []byte {
	return defaultYAML
}
