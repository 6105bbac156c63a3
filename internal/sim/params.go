package sim

// Params holds the simulation tunables. Defaults reproduce the original
// game's feel; the config layer may override them.
type Params struct {
	PlayerSpeed     float64 // movement speed in pixels per second
	PlayerSizeRatio float64 // body side length as a fraction of TileSize
	BoxSlideSpeed   float64 // visual slide speed in tiles per second
	Deadzone        float64 // input magnitude at or below which input is idle
	ShatterFrames   int     // frame count of the shatter animation
	ShatterInterval float64 // seconds per shatter frame
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		PlayerSpeed:     220.0,
		PlayerSizeRatio: 0.7,
		BoxSlideSpeed:   10.0,
		Deadzone:        0.2,
		ShatterFrames:   5,
		ShatterInterval: 0.1,
	}
}
