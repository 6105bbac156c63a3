// Package validate checks level sources for authoring mistakes the
// permissive parser lets through. A finding is either fatal (the level
// cannot be played at all) or a warning (playable but suspicious).
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/undermask/warehouse/internal/sim"
)

// Warning flags a suspicious but playable level property.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// Report is the outcome of checking one level source.
type Report struct {
	Err      error // hard failure: the level cannot be played
	Warnings []Warning
}

// Clean reports whether the check produced no findings at all.
func (r Report) Clean() bool {
	return r.Err == nil && len(r.Warnings) == 0
}

// Has reports whether a warning with the given code was recorded.
func (r Report) Has(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Check parses the grid and collects every finding. A parse failure is
// fatal and reported alone; warnings only come from a playable level.
func Check(text string) Report {
	lv, err := sim.ParseLevel(text)
	if err != nil {
		return Report{Err: err}
	}

	var r Report
	r.checkCounts(lv)
	r.checkAlphabet(text)
	r.checkPerimeter(lv)
	r.checkAnnotations(lv)
	return r
}

func (r *Report) warnf(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// checkCounts flags goal/box arithmetic that makes a level trivial or
// unwinnable.
func (r *Report) checkCounts(lv *sim.Level) {
	if len(lv.Goals) == 0 {
		r.warnf("NO_GOALS", "no goal cells: the level reads as solved immediately")
	}
	if len(lv.BoxStarts) < len(lv.Goals) {
		r.warnf("FEWER_BOXES", "%d crystals cannot cover %d goals",
			len(lv.BoxStarts), len(lv.Goals))
	}
}

// checkAlphabet re-scans the raw text for characters outside the grid
// alphabet and for extra player cells, both of which the parser drops
// silently.
func (r *Report) checkAlphabet(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")

	players := 0
	for y, row := range strings.Split(text, "\n") {
		if i := strings.IndexRune(row, sim.AnnotationDelimiter); i >= 0 {
			row = row[:i]
		}
		for x, ch := range []rune(row) {
			switch ch {
			case '#', '.', '$', '*', 'P', 'B', 'I', ' ':
			case '@', '+':
				players++
			default:
				r.warnf("UNKNOWN_CHAR", "unknown character %q at (%d,%d)", ch, x, y)
			}
		}
	}
	if players > 1 {
		r.warnf("MULTIPLE_PLAYERS", "%d player cells: only the last one is used", players)
	}
}

// checkPerimeter flags occupiable cells on the level's bounding edge.
// Nothing stops the player or a crystal at the edge, so an unwalled
// border lets them leave the authored area.
func (r *Report) checkPerimeter(lv *sim.Level) {
	onEdge := func(c sim.GridPos) bool {
		return c.X == 0 || c.Y == 0 || c.X == lv.Width-1 || c.Y == lv.Height-1
	}

	var open []sim.GridPos
	for c := range lv.Floors {
		if onEdge(c) {
			open = append(open, c)
		}
	}
	for c := range lv.Goals {
		if onEdge(c) {
			open = append(open, c)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].Y != open[j].Y {
			return open[i].Y < open[j].Y
		}
		return open[i].X < open[j].X
	})
	for _, c := range open {
		r.warnf("OPEN_EDGE", "cell %v sits on the level edge without a wall", c)
	}
}

// checkAnnotations flags hints anchored outside the grid.
func (r *Report) checkAnnotations(lv *sim.Level) {
	for _, a := range lv.Annotations {
		if a.Cell.X < 0 || a.Cell.X >= lv.Width {
			r.warnf("ANNOTATION_RANGE", "annotation %q anchored at column %d of a %d-wide level",
				a.Text, a.Cell.X, lv.Width)
		}
	}
}
