// Package game drives the warehouse simulation through a sequence of
// levels and adapts it to the terminal platform's fixed-tick loop.
//
// The simulation itself is time-based and input-agnostic; this package
// supplies what a terminal session needs around it: a held-direction
// window (terminals report key presses, never releases), level
// progression with a short celebration pause, per-run solve metrics and
// their hand-off to the solve recorder.
package game

import (
	"fmt"
	"time"

	"github.com/undermask/warehouse/internal/config"
	"github.com/undermask/warehouse/internal/core"
	"github.com/undermask/warehouse/internal/levels"
	"github.com/undermask/warehouse/internal/sim"
	"github.com/undermask/warehouse/internal/storage"
)

// CampaignID is the game ID reported when playing the builtin campaign.
const CampaignID = "campaign"

// SolveRecorder receives one entry per solved level. *storage.Store
// satisfies it; a nil recorder disables recording.
type SolveRecorder interface {
	SaveSolve(e storage.SolveEntry) (int64, error)
}

// Game runs one or more levels back to back. It satisfies the platform's
// Game interface: the model calls Reset once, then Step every tick with
// the input gathered since the previous tick.
type Game struct {
	id    string
	title string

	cfg    config.Config
	params sim.Params

	sources []levels.Source
	index   int

	sim    *sim.Sim
	simErr error

	recorder SolveRecorder

	// derived from the tick rate on Reset
	dt           float64
	holdTicks    int
	advanceTicks int

	heldDir core.Vec2
	heldFor int

	// per-run metrics, reset with the level
	runTicks int
	pushes   int
	breaks   int
	masksGot int
	startAt  time.Time

	solvedLevels int
	solvedWait   int
	solved       bool
	won          bool
	paused       bool

	tick uint64
}

// NewCampaign creates a game over the builtin campaign in play order.
func NewCampaign(cfg config.Config, rec SolveRecorder) *Game {
	return newGame(CampaignID, "The Masked Warehouseperson", levels.Campaign(), cfg, rec)
}

// NewSingle creates a game over exactly one level.
func NewSingle(src levels.Source, cfg config.Config, rec SolveRecorder) *Game {
	return newGame(src.ID, src.Title, []levels.Source{src}, cfg, rec)
}

func newGame(id, title string, sources []levels.Source, cfg config.Config, rec SolveRecorder) *Game {
	return &Game{
		id:       id,
		title:    title,
		cfg:      cfg,
		params:   simParams(cfg),
		sources:  sources,
		recorder: rec,
	}
}

// simParams maps the user-facing config onto the simulation tunables.
func simParams(cfg config.Config) sim.Params {
	return sim.Params{
		PlayerSpeed:     cfg.Physics.PlayerSpeed,
		PlayerSizeRatio: cfg.Physics.PlayerSizeRatio,
		Deadzone:        cfg.Physics.Deadzone,
		BoxSlideSpeed:   cfg.Animation.BoxSlideSpeed,
		ShatterFrames:   cfg.Animation.ShatterFrames,
		ShatterInterval: cfg.Animation.ShatterInterval,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display title.
func (g *Game) Title() string {
	return g.title
}

// Reset starts the run over from the first level. The tick rate fixes the
// simulated seconds per Step and converts the hold and advance windows
// from seconds into ticks. Screen dimensions are ignored: layout is
// derived from the destination screen on every Render, so resizes need no
// reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.dt = 1.0 / float64(rate)
	g.holdTicks = int(g.cfg.Game.InputHold*float64(rate) + 0.5)
	g.advanceTicks = int(g.cfg.Game.NextLevelDelay*float64(rate) + 0.5)

	g.tick = 0
	g.solvedLevels = 0
	g.won = false
	g.paused = false
	g.loadLevel(0)
}

// loadLevel builds a fresh simulation for the given source and zeroes the
// per-run state. A parse failure leaves the game in an error state that
// Step treats as terminal and Render reports.
func (g *Game) loadLevel(index int) {
	g.index = index
	g.solved = false
	g.solvedWait = 0
	g.heldDir = core.Vec2{}
	g.heldFor = 0
	g.runTicks = 0
	g.pushes = 0
	g.breaks = 0
	g.masksGot = 0
	g.startAt = time.Now()

	src := g.sources[index]
	s, err := sim.New(src.Text, g.params)
	if err != nil {
		g.sim = nil
		g.simErr = fmt.Errorf("level %s: %w", src.ID, err)
		return
	}
	g.sim = s
	g.simErr = nil
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.won || g.simErr != nil {
		return core.StepResult{State: g.State()}
	}

	if g.solved {
		g.solvedWait++
		if g.solvedWait >= g.advanceTicks {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionAbility) {
		g.sim.CycleAbility()
	}
	g.trackHeldDir(input)

	res := g.sim.Tick(g.dt, g.heldDir)
	g.runTicks++
	g.pushes += len(res.Pushed)
	g.breaks += len(res.Shattered)
	g.masksGot += len(res.Collected)

	if res.SolvedEdge {
		g.solved = true
		g.solvedWait = 0
		g.solvedLevels++
		g.recordSolve()
	}

	return core.StepResult{State: g.State()}
}

// restart handles the restart key. Mid-run it rebuilds the current level;
// after the final level it starts the whole sequence over.
func (g *Game) restart() {
	if g.won {
		g.won = false
		g.solvedLevels = 0
		g.loadLevel(0)
		return
	}
	if g.sim != nil {
		g.sim.Restart()
	}
	g.solved = false
	g.solvedWait = 0
	g.heldDir = core.Vec2{}
	g.heldFor = 0
	g.runTicks = 0
	g.pushes = 0
	g.breaks = 0
	g.masksGot = 0
	g.startAt = time.Now()
}

// trackHeldDir turns key-press events into a sustained direction. A press
// sets the held direction and restarts the hold window; with no further
// presses the direction expires after holdTicks ticks. Opposing keys in
// the same frame cancel on that axis.
func (g *Game) trackHeldDir(input core.InputFrame) {
	var dir core.Vec2
	if input.Has(core.ActionUp) {
		dir.Y--
	}
	if input.Has(core.ActionDown) {
		dir.Y++
	}
	if input.Has(core.ActionLeft) {
		dir.X--
	}
	if input.Has(core.ActionRight) {
		dir.X++
	}

	if !dir.IsZero() {
		g.heldDir = dir
		g.heldFor = 0
		return
	}
	if g.heldDir.IsZero() {
		return
	}
	g.heldFor++
	if g.heldFor >= g.holdTicks {
		g.heldDir = core.Vec2{}
		g.heldFor = 0
	}
}

// advanceLevel moves to the next level, or ends the run after the last.
func (g *Game) advanceLevel() {
	next := g.index + 1
	if next >= len(g.sources) {
		g.won = true
		return
	}
	g.loadLevel(next)
}

// recordSolve hands the finished run to the recorder.
func (g *Game) recordSolve() {
	if g.recorder == nil {
		return
	}
	entry := storage.SolveEntry{
		LevelID:  g.sources[g.index].ID,
		Ticks:    g.runTicks,
		Duration: time.Since(g.startAt),
		Pushes:   g.pushes,
		Breaks:   g.breaks,
		Masks:    g.masksGot,
	}
	//nolint:errcheck // best-effort save
	g.recorder.SaveSolve(entry)
}

// State reports the platform-facing game state. Score is the number of
// levels solved since Reset.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.solvedLevels,
		GameOver: g.won,
		Paused:   g.paused,
	}
}

// LevelID returns the ID of the level currently loaded.
func (g *Game) LevelID() string {
	return g.sources[g.index].ID
}

// Sim exposes the running simulation for rendering and tests.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}
