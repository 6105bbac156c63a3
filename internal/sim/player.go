package sim

import "github.com/undermask/warehouse/internal/core"

// Player is the continuously moving body. Pos is the top-left corner of
// the square body (matching the rect anchoring the collision arithmetic is
// written against); the body is smaller than a tile so it can thread
// single-tile corridors.
type Player struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Size   float64
	Facing core.Vec2 // last nonzero input direction, for the renderer

	Abilities map[Power]bool // always contains PowerNone
	Current   Power          // always a member of Abilities
}

// NewPlayer creates a player at the given world position with the given
// body side length, holding only PowerNone.
func NewPlayer(pos core.Vec2, size float64) *Player {
	return &Player{
		Pos:       pos,
		Size:      size,
		Abilities: map[Power]bool{PowerNone: true},
		Current:   PowerNone,
	}
}

// Rect returns the body rectangle at the current position.
func (p *Player) Rect() core.RectF {
	return p.rectAt(p.Pos)
}

// rectAt returns the body rectangle anchored at an arbitrary position.
func (p *Player) rectAt(pos core.Vec2) core.RectF {
	return core.NewRectF(pos.X, pos.Y, p.Size, p.Size)
}

// Acquire adds a power to the held set and immediately equips it.
// Re-acquiring a held power only re-equips it.
func (p *Player) Acquire(pw Power) {
	p.Abilities[pw] = true
	p.Current = pw
}

// Has reports whether the power is held.
func (p *Player) Has(pw Power) bool {
	return p.Abilities[pw]
}

// CycleNext advances Current to the next held power in ordinal order,
// wrapping around the enumeration. PowerNone is always held, so the scan
// terminates within one wrap; with only PowerNone held this is a no-op.
func (p *Player) CycleNext() {
	for i := 1; i <= powerCount; i++ {
		next := Power((int(p.Current) + i) % powerCount)
		if p.Abilities[next] {
			p.Current = next
			return
		}
	}
}
