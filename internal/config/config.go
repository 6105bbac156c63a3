// Package config provides YAML-based configuration loading for the
// warehouse game: movement physics, animation pacing and session
// behavior.
package config

import "fmt"

// Config contains all tunable parameters.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Animation AnimationConfig `yaml:"animation"`
	Game      GameConfig      `yaml:"game"`
}

// PhysicsConfig defines the player's continuous movement.
type PhysicsConfig struct {
	PlayerSpeed     float64 `yaml:"player_speed"`      // pixels per second
	PlayerSizeRatio float64 `yaml:"player_size_ratio"` // body side as a fraction of a tile
	Deadzone        float64 `yaml:"deadzone"`          // input magnitude below which the player idles
}

// AnimationConfig defines presentation timing. None of it affects the
// logical state except that a sliding crystal refuses further pushes.
type AnimationConfig struct {
	BoxSlideSpeed   float64 `yaml:"box_slide_speed"`  // tiles per second
	ShatterFrames   int     `yaml:"shatter_frames"`   // frame count of the break animation
	ShatterInterval float64 `yaml:"shatter_interval"` // seconds per frame
}

// GameConfig defines session pacing around the simulation.
type GameConfig struct {
	TickRate       int     `yaml:"tick_rate"`        // simulation steps per second
	InputHold      float64 `yaml:"input_hold"`       // seconds a pressed direction stays applied
	NextLevelDelay float64 `yaml:"next_level_delay"` // seconds between solving and advancing
}

// Validate checks every parameter against its sane range.
func (c Config) Validate() error {
	if c.Physics.PlayerSpeed <= 0 {
		return fmt.Errorf("physics.player_speed must be positive, got %v", c.Physics.PlayerSpeed)
	}
	if c.Physics.PlayerSizeRatio <= 0 || c.Physics.PlayerSizeRatio > 1 {
		return fmt.Errorf("physics.player_size_ratio must be in (0,1], got %v", c.Physics.PlayerSizeRatio)
	}
	if c.Physics.Deadzone < 0 || c.Physics.Deadzone >= 1 {
		return fmt.Errorf("physics.deadzone must be in [0,1), got %v", c.Physics.Deadzone)
	}
	if c.Animation.BoxSlideSpeed <= 0 {
		return fmt.Errorf("animation.box_slide_speed must be positive, got %v", c.Animation.BoxSlideSpeed)
	}
	if c.Animation.ShatterFrames < 1 {
		return fmt.Errorf("animation.shatter_frames must be at least 1, got %d", c.Animation.ShatterFrames)
	}
	if c.Animation.ShatterInterval <= 0 {
		return fmt.Errorf("animation.shatter_interval must be positive, got %v", c.Animation.ShatterInterval)
	}
	if c.Game.TickRate < 10 || c.Game.TickRate > 240 {
		return fmt.Errorf("game.tick_rate must be in [10,240], got %d", c.Game.TickRate)
	}
	if c.Game.InputHold < 0 {
		return fmt.Errorf("game.input_hold must not be negative, got %v", c.Game.InputHold)
	}
	if c.Game.NextLevelDelay < 0 {
		return fmt.Errorf("game.next_level_delay must not be negative, got %v", c.Game.NextLevelDelay)
	}
	return nil
}
