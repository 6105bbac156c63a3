package sim

import "github.com/undermask/warehouse/internal/core"

// slideEpsilon is the remaining distance under which a slide snaps to its
// target.
const slideEpsilon = 0.5

// Box is a pushable crystal occupying exactly one grid cell. Cell is the
// authoritative position: collision, pushing and goal-matching use only
// Cell, which updates synchronously on a successful push. Visual trails
// behind for presentation and converges to Cell's world position.
type Box struct {
	Cell    GridPos
	Visual  core.Vec2
	sliding bool
}

// NewBox creates an idle box at the given cell.
func NewBox(cell GridPos) *Box {
	return &Box{Cell: cell, Visual: cell.ToWorld()}
}

// Sliding reports whether the box is mid-slide. A sliding box cannot be
// pushed again until its animation completes.
func (b *Box) Sliding() bool {
	return b.sliding
}

// TryPush attempts to move the box one cell in the given cardinal
// direction. The push is rejected if the target cell is a wall, if the box
// is mid-slide, or if another box already occupies the target. On success
// the logical cell updates immediately and a slide toward it begins; on
// failure nothing changes.
func (b *Box) TryPush(dir GridPos, lv *Level, boxes []*Box) bool {
	if b.sliding {
		return false
	}

	target := b.Cell.Add(dir)
	if lv.IsWall(target) {
		return false
	}
	for _, other := range boxes {
		if other != b && other.Cell == target {
			return false
		}
	}

	b.Cell = target
	b.sliding = true
	return true
}

// advanceSlide moves the visual position toward the logical cell at the
// given speed (pixels per second). When the remaining distance would be
// overshot or falls under the snap epsilon, the box snaps and goes idle.
func (b *Box) advanceSlide(dt, speed float64) {
	if !b.sliding {
		return
	}

	target := b.Cell.ToWorld()
	delta := target.Sub(b.Visual)
	dist := delta.Length()
	step := speed * dt

	if dist <= step || dist < slideEpsilon {
		b.Visual = target
		b.sliding = false
		return
	}
	b.Visual = b.Visual.Add(delta.Scale(step / dist))
}
