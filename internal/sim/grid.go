// Package sim implements the warehouse simulation: level parsing, the
// ability state machine, the per-tick movement resolver, and the box
// slide/shatter animations. It is pure logic with no terminal or file
// dependencies so every rule is unit-testable.
package sim

import (
	"fmt"

	"github.com/undermask/warehouse/internal/core"
)

// TileSize is the side length of one grid cell in world units (pixels).
// All continuous-space arithmetic is expressed in these units.
const TileSize = 64.0

// GridPos is a 2D integer cell address. X increases to the right,
// Y increases downward. Value type, usable as a map key.
type GridPos struct {
	X int
	Y int
}

// G is a convenience constructor for GridPos.
func G(x, y int) GridPos {
	return GridPos{X: x, Y: y}
}

// String returns a string representation of the cell address.
func (p GridPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the cell offset by another cell delta.
func (p GridPos) Add(d GridPos) GridPos {
	return GridPos{X: p.X + d.X, Y: p.Y + d.Y}
}

// ToWorld returns the world position of the cell's top-left corner.
func (p GridPos) ToWorld() core.Vec2 {
	return core.Vec2{X: float64(p.X) * TileSize, Y: float64(p.Y) * TileSize}
}

// Center returns the world position of the cell's center.
func (p GridPos) Center() core.Vec2 {
	return core.Vec2{X: (float64(p.X) + 0.5) * TileSize, Y: (float64(p.Y) + 0.5) * TileSize}
}

// TileRect returns the cell's world-space rectangle.
func (p GridPos) TileRect() core.RectF {
	return core.NewRectF(float64(p.X)*TileSize, float64(p.Y)*TileSize, TileSize, TileSize)
}

// Cardinal unit deltas for pushes.
var (
	DirUp    = GridPos{X: 0, Y: -1}
	DirDown  = GridPos{X: 0, Y: 1}
	DirLeft  = GridPos{X: -1, Y: 0}
	DirRight = GridPos{X: 1, Y: 0}
)
