package sim

// Shatter is the finite animation played at a destroyed box's cell. It
// advances one frame per fixed interval, driven purely by elapsed time,
// and terminates after the configured frame count. The owner discards it
// once Active reports false.
type Shatter struct {
	Cell     GridPos
	frames   int
	interval float64
	elapsed  float64
}

func newShatter(cell GridPos, frames int, interval float64) *Shatter {
	return &Shatter{Cell: cell, frames: frames, interval: interval}
}

// Advance accumulates elapsed time.
func (s *Shatter) Advance(dt float64) {
	s.elapsed += dt
}

// Frame returns the current frame index, starting at 0.
func (s *Shatter) Frame() int {
	return int(s.elapsed / s.interval)
}

// Active reports whether the animation still has frames to show.
func (s *Shatter) Active() bool {
	return s.Frame() < s.frames
}
