package sim

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMissingPlayer is returned when a level defines no player cell.
// It is the only hard parse failure; such a level is unplayable.
var ErrMissingPlayer = errors.New("level has no player cell")

// AnnotationDelimiter introduces a per-row hint suffix. It is not part of
// the grid alphabet, so everything from the first occurrence onward is
// stripped before cells are classified.
const AnnotationDelimiter = ';'

// Annotation is a positioned hint for the renderer. Game logic never
// consumes annotations.
type Annotation struct {
	Cell GridPos
	Text string
}

// Level is the static geometry and initial entity placement parsed from a
// textual grid. Walls, floors and goals are immutable after parse; Masks
// shrinks as the player collects pickups. Boxes live outside the Level
// (owned by the Sim) and start at BoxStarts.
//
// Grid alphabet:
//
//	#  wall          .  goal           $  box (on floor)
//	@  player        *  box on goal    +  player on goal
//	P  push mask     B  break mask     I  ignore mask
//	' ' floor
//
// Rows are not padded: a short row has no cells beyond its length, which
// is outside the level rather than floor. Trailing spaces are floor.
type Level struct {
	Walls       map[GridPos]bool
	Floors      map[GridPos]bool
	Goals       map[GridPos]bool
	Masks       []Mask
	BoxStarts   []GridPos
	PlayerStart GridPos
	Annotations []Annotation
	Width       int // widest row in cells
	Height      int // row count
}

// ParseLevel converts a textual grid into a Level. Leading and trailing
// blank lines are stripped; CRLF line endings are tolerated. Unknown
// characters produce no cell (the validator reports them). If several
// player cells are defined, the last one wins.
func ParseLevel(text string) (*Level, error) {
	lv := &Level{
		Walls:  make(map[GridPos]bool),
		Floors: make(map[GridPos]bool),
		Goals:  make(map[GridPos]bool),
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")
	rows := strings.Split(text, "\n")

	playerFound := false
	for y, row := range rows {
		if i := strings.IndexRune(row, AnnotationDelimiter); i >= 0 {
			lv.addAnnotation(row[i+1:], y)
			row = row[:i]
		}

		cells := []rune(row)
		if len(cells) > lv.Width {
			lv.Width = len(cells)
		}

		for x, ch := range cells {
			pos := GridPos{X: x, Y: y}

			switch ch {
			case '#':
				lv.Walls[pos] = true
			case '.':
				lv.Goals[pos] = true
			case '$':
				lv.BoxStarts = append(lv.BoxStarts, pos)
				lv.Floors[pos] = true
			case '@':
				lv.PlayerStart = pos
				playerFound = true
				lv.Floors[pos] = true
			case '*':
				lv.BoxStarts = append(lv.BoxStarts, pos)
				lv.Goals[pos] = true
			case '+':
				lv.PlayerStart = pos
				playerFound = true
				lv.Goals[pos] = true
			case 'P':
				lv.Masks = append(lv.Masks, Mask{Cell: pos, Power: PowerPush})
				lv.Floors[pos] = true
			case 'B':
				lv.Masks = append(lv.Masks, Mask{Cell: pos, Power: PowerBreak})
				lv.Floors[pos] = true
			case 'I':
				lv.Masks = append(lv.Masks, Mask{Cell: pos, Power: PowerIgnore})
				lv.Floors[pos] = true
			case ' ':
				lv.Floors[pos] = true
			default:
				// No cell. Unknown characters are an authoring mistake the
				// validator surfaces; the parser stays permissive.
			}
		}
	}

	lv.Height = len(rows)

	if !playerFound {
		return nil, ErrMissingPlayer
	}
	return lv, nil
}

// addAnnotation parses an annotation payload of the form
// "<column> <text>" anchored at the given row. Malformed payloads are
// dropped: hints are presentation-only and never fail a level.
func (lv *Level) addAnnotation(payload string, row int) {
	payload = strings.TrimSpace(payload)
	col, rest, ok := strings.Cut(payload, " ")
	if !ok {
		return
	}
	x, err := strconv.Atoi(col)
	if err != nil {
		return
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return
	}
	lv.Annotations = append(lv.Annotations, Annotation{Cell: GridPos{X: x, Y: row}, Text: text})
}

// IsWall reports whether the cell is a wall.
func (lv *Level) IsWall(pos GridPos) bool {
	return lv.Walls[pos]
}
