package sim

import (
	"math"
	"sort"

	"github.com/undermask/warehouse/internal/core"
)

// BoxPushedEvent records a successful push.
type BoxPushedEvent struct {
	From GridPos
	To   GridPos
}

// BoxShatteredEvent records a box destroyed by the break ability.
type BoxShatteredEvent struct {
	Cell GridPos
}

// MaskCollectedEvent records a mask pickup.
type MaskCollectedEvent struct {
	Cell  GridPos
	Power Power
}

// TickResult contains what happened during one simulation tick. The
// presentation layer subscribes to the event slices instead of being
// called into by the simulation.
type TickResult struct {
	Moved      bool // the player's position changed this tick
	SolvedEdge bool // this tick is the unsolved-to-solved transition
	Pushed     []BoxPushedEvent
	Shattered  []BoxShatteredEvent
	Collected  []MaskCollectedEvent
}

// Sim owns one level instance: parsed geometry, the player, the box set
// and any running shatter animations. All mutation happens synchronously
// inside Tick; there is no internal concurrency.
type Sim struct {
	source string // retained level text, rebuilt from on Restart
	params Params

	level    *Level
	player   *Player
	boxes    []*Box
	shatters []*Shatter

	prevSolved bool
	tick       uint64
}

// New parses the level text and builds a fresh simulation.
func New(text string, params Params) (*Sim, error) {
	s := &Sim{source: text, params: params}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// build (re)constructs all level state from the retained source text.
func (s *Sim) build() error {
	lv, err := ParseLevel(s.source)
	if err != nil {
		return err
	}

	s.level = lv
	s.player = NewPlayer(lv.PlayerStart.ToWorld(), s.params.PlayerSizeRatio*TileSize)
	s.boxes = make([]*Box, 0, len(lv.BoxStarts))
	for _, c := range lv.BoxStarts {
		s.boxes = append(s.boxes, NewBox(c))
	}
	s.shatters = nil
	s.prevSolved = false
	s.tick = 0
	return nil
}

// Restart rebuilds the level, player and boxes from the original text,
// discarding collected masks, moved or broken boxes, all in-flight
// animations and the solved latch.
func (s *Sim) Restart() {
	// The source parsed successfully at construction; it cannot fail now.
	_ = s.build()
}

// Tick advances the simulation by dt seconds with the given input
// direction and returns what happened.
//
// Resolution order:
//
//  1. Velocity from input (normalized; idle inside the deadzone), then the
//     tentative position and body rectangle.
//  2. Walls: any overlap aborts the move outright, no clamping.
//  3. Boxes (skipped entirely while Ignore is selected): only the first
//     overlapping box in deterministic order is acted on. Break removes it
//     and aborts; Push moves it one cell in the dominant input axis and
//     falls through on success, aborts on rejection; any other ability
//     aborts.
//  4. Masks: every overlapping pickup is collected (marked during the
//     scan, applied after), each acquiring and equipping its power.
//  5. Commit the tentative position.
//
// An abort leaves this tick's movement uncommitted but keeps mutations of
// earlier steps (a broken box stays broken). Slides and shatters then
// advance on elapsed time alone, and the solved edge is computed from the
// unsolved-to-solved transition.
func (s *Sim) Tick(dt float64, dir core.Vec2) TickResult {
	var res TickResult
	s.resolve(dt, dir, &res)

	slidePx := s.params.BoxSlideSpeed * TileSize
	for _, b := range s.boxes {
		b.advanceSlide(dt, slidePx)
	}
	s.advanceShatters(dt)

	solved := s.Solved()
	res.SolvedEdge = solved && !s.prevSolved
	s.prevSolved = solved

	s.tick++
	return res
}

// resolve runs steps 1-5 of the tick. It mutates the player, the box set
// and the level's mask slice; res receives the events.
func (s *Sim) resolve(dt float64, dir core.Vec2, res *TickResult) {
	p := s.player

	if dir.LengthSq() > s.params.Deadzone*s.params.Deadzone {
		p.Vel = dir.Normalized().Scale(s.params.PlayerSpeed)
		p.Facing = dir
	} else {
		p.Vel = core.Vec2{}
	}

	newPos := p.Pos.Add(p.Vel.Scale(dt))
	future := p.rectAt(newPos)

	for w := range s.level.Walls {
		if future.Overlaps(w.TileRect()) {
			return
		}
	}

	if p.Current != PowerIgnore {
		if idx, hit := s.firstCollidingBox(future); hit {
			box := s.boxes[idx]
			switch p.Current {
			case PowerBreak:
				s.boxes = append(s.boxes[:idx], s.boxes[idx+1:]...)
				s.shatters = append(s.shatters, newShatter(box.Cell, s.params.ShatterFrames, s.params.ShatterInterval))
				res.Shattered = append(res.Shattered, BoxShatteredEvent{Cell: box.Cell})
				return
			case PowerPush:
				from := box.Cell
				if !box.TryPush(cardinal(dir), s.level, s.boxes) {
					return
				}
				res.Pushed = append(res.Pushed, BoxPushedEvent{From: from, To: box.Cell})
			default:
				return
			}
		}
	}

	for _, i := range s.collidingMasks(future) {
		m := s.level.Masks[i]
		p.Acquire(m.Power)
		res.Collected = append(res.Collected, MaskCollectedEvent{Cell: m.Cell, Power: m.Power})
	}
	s.dropCollectedMasks(res.Collected)

	res.Moved = newPos != p.Pos
	p.Pos = newPos
}

// firstCollidingBox returns the index of the nearest box whose tile
// overlaps the rectangle, or false if none does. Nearest is by squared
// distance from the box's tile center to the rectangle's center, ties
// broken by (Y, X), which makes the pick reproducible regardless of how
// the boxes entered the slice.
func (s *Sim) firstCollidingBox(future core.RectF) (int, bool) {
	center := future.Center()
	best := -1
	var bestKey [3]float64

	for i, b := range s.boxes {
		if !future.Overlaps(b.Cell.TileRect()) {
			continue
		}
		d := b.Cell.Center().Sub(center)
		key := [3]float64{d.LengthSq(), float64(b.Cell.Y), float64(b.Cell.X)}
		if best < 0 || keyLess(key, bestKey) {
			best = i
			bestKey = key
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// collidingMasks returns the indices of all masks overlapping the
// rectangle, nearest first with (Y, X) tie-breaking. The last index in
// the result determines the equipped ability when several pickups land in
// one tick.
func (s *Sim) collidingMasks(future core.RectF) []int {
	center := future.Center()
	var hits []int
	for i, m := range s.level.Masks {
		if future.Overlaps(m.Cell.TileRect()) {
			hits = append(hits, i)
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		ma, mb := s.level.Masks[hits[a]], s.level.Masks[hits[b]]
		da := ma.Cell.Center().Sub(center).LengthSq()
		db := mb.Cell.Center().Sub(center).LengthSq()
		if da != db {
			return da < db
		}
		if ma.Cell.Y != mb.Cell.Y {
			return ma.Cell.Y < mb.Cell.Y
		}
		return ma.Cell.X < mb.Cell.X
	})
	return hits
}

// dropCollectedMasks removes every mask named in the collected events,
// applied after the scan so the mask slice is never mutated mid-iteration.
func (s *Sim) dropCollectedMasks(collected []MaskCollectedEvent) {
	if len(collected) == 0 {
		return
	}
	taken := make(map[GridPos]bool, len(collected))
	for _, ev := range collected {
		taken[ev.Cell] = true
	}
	kept := s.level.Masks[:0]
	for _, m := range s.level.Masks {
		if !taken[m.Cell] {
			kept = append(kept, m)
		}
	}
	s.level.Masks = kept
}

// advanceShatters ages all shatter animations and discards finished ones.
func (s *Sim) advanceShatters(dt float64) {
	kept := s.shatters[:0]
	for _, sh := range s.shatters {
		sh.Advance(dt)
		if sh.Active() {
			kept = append(kept, sh)
		}
	}
	s.shatters = kept
}

// Solved reports whether every goal cell is covered by a box's logical
// cell. Boxes on non-goal cells are irrelevant.
func (s *Sim) Solved() bool {
	for g := range s.level.Goals {
		if !s.boxAt(g) {
			return false
		}
	}
	return true
}

func (s *Sim) boxAt(cell GridPos) bool {
	for _, b := range s.boxes {
		if b.Cell == cell {
			return true
		}
	}
	return false
}

// CycleAbility advances the selected ability to the next held power. It is
// a discrete command, decoupled from the movement input.
func (s *Sim) CycleAbility() {
	s.player.CycleNext()
}

// Level returns the current level instance.
func (s *Sim) Level() *Level {
	return s.level
}

// Player returns the player.
func (s *Sim) Player() *Player {
	return s.player
}

// Boxes returns the live box set.
func (s *Sim) Boxes() []*Box {
	return s.boxes
}

// Shatters returns the running shatter animations.
func (s *Sim) Shatters() []*Shatter {
	return s.shatters
}

// Ticks returns the number of Tick calls since construction or Restart.
func (s *Sim) Ticks() uint64 {
	return s.tick
}

// cardinal rounds an input direction to the nearest axis-aligned unit
// cell delta; the horizontal axis wins exact diagonals. The zero vector
// maps to a zero delta.
func cardinal(dir core.Vec2) GridPos {
	if dir.IsZero() {
		return GridPos{}
	}
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dir.Y > 0 {
		return DirDown
	}
	return DirUp
}

// keyLess compares (distance, Y, X) ordering keys.
func keyLess(a, b [3]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
