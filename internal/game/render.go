package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/undermask/warehouse/internal/core"
	"github.com/undermask/warehouse/internal/sim"
)

// Screen layout. A tile is two terminal cells wide and one tall, which is
// close to square in most fonts.
const (
	hudHeight = 2 // status line plus separator
	barHeight = 1 // ability bar at the bottom
	tileCols  = 2
)

// shatterRunes is the break animation, indexed by frame. Late frames
// clamp to the final rune when the configured frame count is longer.
var shatterRunes = []rune{'▓', '▒', '░', '+', '·'}

func maskRune(p sim.Power) (rune, core.Color) {
	switch p {
	case sim.PowerPush:
		return 'P', core.ColorBrightBlue
	case sim.PowerBreak:
		return 'B', core.ColorBrightRed
	case sim.PowerIgnore:
		return 'I', core.ColorBrightMagenta
	default:
		return '?', core.ColorWhite
	}
}

func playerColor(p sim.Power) core.Color {
	switch p {
	case sim.PowerPush:
		return core.ColorBrightBlue
	case sim.PowerBreak:
		return core.ColorBrightRed
	case sim.PowerIgnore:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightCyan
	}
}

// Render draws the whole frame: HUD, the level grid with its entities,
// the ability bar, and any modal overlay. Layout is computed from the
// destination screen, so the frame follows terminal resizes by itself.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.simErr != nil {
		g.renderOverlay(dst, "Level failed to load", g.simErr.Error())
		return
	}

	lv := g.sim.Level()
	mapW := lv.Width * tileCols
	mapH := lv.Height
	availW := dst.Width()
	availH := dst.Height() - hudHeight - barHeight
	if availW < mapW || availH < mapH {
		g.renderOverlay(dst, "Terminal too small",
			fmt.Sprintf("need %dx%d cells for this level", mapW, mapH+hudHeight+barHeight))
		return
	}
	offX := (availW - mapW) / 2
	offY := hudHeight + (availH-mapH)/2

	g.renderTiles(dst, lv, offX, offY)
	g.renderBoxes(dst, lv, offX, offY)
	g.renderShatters(dst, offX, offY)
	g.renderMasks(dst, lv, offX, offY)
	g.renderPlayer(dst, offX, offY)
	g.renderAnnotations(dst, lv, offX, offY+mapH)
	g.renderAbilityBar(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "Warehouse cleared!", "Press R to play again, Q to quit")
	case g.solved:
		g.renderOverlay(dst, "Level solved!", g.nextLevelLine())
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" WAREHOUSE  Level %d/%d: %s  Time: %.1fs  Pushes: %d",
		g.index+1, len(g.sources), g.sources[g.index].Title,
		float64(g.runTicks)*g.dt, g.pushes)
	dst.DrawTextWithColor(0, 0, hud, core.ColorBrightWhite)
	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', core.ColorGray)
	}
}

func (g *Game) renderTiles(dst *core.Screen, lv *sim.Level, offX, offY int) {
	for pos := range lv.Walls {
		g.drawTile(dst, pos, offX, offY, '█', core.ColorGray)
	}
	for pos := range lv.Goals {
		g.drawTile(dst, pos, offX, offY, '·', core.ColorBrightYellow)
	}
}

// renderBoxes draws boxes at their visual position so slides show as
// motion. A box resting on a goal turns green; while the ignore mask is
// worn all boxes dim to signal they are intangible.
func (g *Game) renderBoxes(dst *core.Screen, lv *sim.Level, offX, offY int) {
	ignoring := g.sim.Player().Current == sim.PowerIgnore
	for _, b := range g.sim.Boxes() {
		x := offX + int(math.Round(b.Visual.X/sim.TileSize*tileCols))
		y := offY + int(math.Round(b.Visual.Y/sim.TileSize))
		c := core.ColorOrange
		if lv.Goals[b.Cell] && !b.Sliding() {
			c = core.ColorBrightGreen
		}
		if ignoring {
			c = core.ColorGray
		}
		dst.SetWithColor(x, y, '[', c)
		dst.SetWithColor(x+1, y, ']', c)
	}
}

func (g *Game) renderShatters(dst *core.Screen, offX, offY int) {
	for _, sh := range g.sim.Shatters() {
		frame := sh.Frame()
		if frame >= len(shatterRunes) {
			frame = len(shatterRunes) - 1
		}
		g.drawTile(dst, sh.Cell, offX, offY, shatterRunes[frame], core.ColorBrightRed)
	}
}

func (g *Game) renderMasks(dst *core.Screen, lv *sim.Level, offX, offY int) {
	for _, m := range lv.Masks {
		r, c := maskRune(m.Power)
		x := offX + m.Cell.X*tileCols
		y := offY + m.Cell.Y
		dst.SetWithColor(x, y, r, c)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, offX, offY int) {
	p := g.sim.Player()
	x := offX + int(math.Round(p.Pos.X/sim.TileSize*tileCols))
	y := offY + int(math.Round(p.Pos.Y/sim.TileSize))
	dst.SetWithColor(x, y, '@', playerColor(p.Current))
}

// renderAnnotations lists author hints under the map. Drawing them at
// their anchor cell would cover the playfield, so the anchor is kept for
// tooling and the text goes below.
func (g *Game) renderAnnotations(dst *core.Screen, lv *sim.Level, offX, mapBottom int) {
	y := mapBottom + 1
	for _, a := range lv.Annotations {
		if y >= dst.Height()-barHeight {
			break
		}
		dst.DrawTextWithColor(offX, y, a.Text, core.ColorGray)
		y++
	}
}

// renderAbilityBar shows the four power slots. Unheld powers are dim, held
// ones white, and the worn one bracketed in yellow.
func (g *Game) renderAbilityBar(dst *core.Screen) {
	y := dst.Height() - 1
	p := g.sim.Player()
	x := 1
	for pw := sim.PowerNone; pw <= sim.PowerIgnore; pw++ {
		label := strings.ToLower(pw.String())
		c := core.ColorGray
		if p.Has(pw) {
			c = core.ColorWhite
		}
		if pw == p.Current {
			label = "[" + label + "]"
			c = core.ColorBrightYellow
		} else {
			label = " " + label + " "
		}
		dst.DrawTextWithColor(x, y, label, c)
		x += len(label) + 1
	}

	hint := "space swaps mask, r restarts"
	if x+len(hint)+1 < dst.Width() {
		dst.DrawTextWithColor(dst.Width()-len(hint)-1, y, hint, core.ColorGray)
	}
}

func (g *Game) drawTile(dst *core.Screen, pos sim.GridPos, offX, offY int, r rune, c core.Color) {
	x := offX + pos.X*tileCols
	y := offY + pos.Y
	dst.SetWithColor(x, y, r, c)
	dst.SetWithColor(x+1, y, r, c)
}

// renderOverlay draws a centered message box over the scene.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := core.Max(len(line1), len(line2)) + 6
	if w > dst.Width() {
		w = dst.Width()
	}
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextWithColor((dst.Width()-len(line1))/2, y+1, line1, core.ColorBrightYellow)
	dst.DrawTextWithColor((dst.Width()-len(line2))/2, y+3, line2, core.ColorWhite)
}

func (g *Game) nextLevelLine() string {
	if g.index+1 < len(g.sources) {
		return "Next: " + g.sources[g.index+1].Title
	}
	return "That was the last crate"
}
