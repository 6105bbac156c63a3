package game

import (
	"strings"
	"testing"

	"github.com/undermask/warehouse/internal/config"
	"github.com/undermask/warehouse/internal/core"
	"github.com/undermask/warehouse/internal/levels"
	"github.com/undermask/warehouse/internal/sim"
	"github.com/undermask/warehouse/internal/storage"
)

// captureRecorder collects solve entries instead of writing them to disk.
type captureRecorder struct {
	entries []storage.SolveEntry
}

func (r *captureRecorder) SaveSolve(e storage.SolveEntry) (int64, error) {
	r.entries = append(r.entries, e)
	return int64(len(r.entries)), nil
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// press steps the game once with exactly the given actions set.
func press(g *Game, actions ...core.Action) {
	input := core.NewInputFrame()
	for _, a := range actions {
		input.Set(a)
	}
	g.Step(input)
}

// solveFirstCampaignLevel walks the known solution of the opening level:
// up to grab the push mask, back down past the wall row, then left until
// the crystal lands on the goal.
func solveFirstCampaignLevel(g *Game) {
	press(g, core.ActionUp)
	press(g, core.ActionDown)
	press(g, core.ActionDown)
	for i := 0; i < 25; i++ {
		press(g, core.ActionLeft)
	}
}

func TestCampaignSolveAndAdvance(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	if g.index != 0 {
		t.Fatalf("expected to start at level 0, got %d", g.index)
	}

	solveFirstCampaignLevel(g)

	if !g.solved {
		t.Fatal("first campaign level should be solved by the scripted walk")
	}
	if g.pushes != 1 {
		t.Errorf("expected 1 push, got %d", g.pushes)
	}
	if g.masksGot != 1 {
		t.Errorf("expected 1 mask collected, got %d", g.masksGot)
	}
	if g.State().Score != 1 {
		t.Errorf("expected score 1 after solving, got %d", g.State().Score)
	}
	if g.index != 0 {
		t.Errorf("should still show the solved level during the pause, at %d", g.index)
	}

	// The celebration pause is next_level_delay seconds of ticks.
	empty := core.NewInputFrame()
	for i := 0; i < g.advanceTicks; i++ {
		g.Step(empty)
	}

	if g.index != 1 {
		t.Errorf("expected to advance to level 1, got %d", g.index)
	}
	if g.solved {
		t.Error("solved flag should reset on the next level")
	}
	if g.LevelID() != "ignore_tutorial" {
		t.Errorf("expected ignore_tutorial next, got %s", g.LevelID())
	}
}

func TestSolveRecorded(t *testing.T) {
	rec := &captureRecorder{}
	g := NewCampaign(config.Default(), rec)
	g.Reset(testRuntime())

	solveFirstCampaignLevel(g)

	if len(rec.entries) != 1 {
		t.Fatalf("expected 1 recorded solve, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.LevelID != "push_tutorial" {
		t.Errorf("expected level push_tutorial, got %s", e.LevelID)
	}
	if e.Pushes != 1 {
		t.Errorf("expected 1 push in entry, got %d", e.Pushes)
	}
	if e.Masks != 1 {
		t.Errorf("expected 1 mask in entry, got %d", e.Masks)
	}
	if e.Breaks != 0 {
		t.Errorf("expected 0 breaks in entry, got %d", e.Breaks)
	}
	if e.Ticks <= 0 || e.Ticks > 60 {
		t.Errorf("tick count %d outside the plausible range for the script", e.Ticks)
	}
	if e.Duration < 0 {
		t.Errorf("negative duration %v", e.Duration)
	}
}

func TestHeldDirectionDecay(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	// 0.15s hold at 60fps is 9 ticks
	if g.holdTicks != 9 {
		t.Fatalf("expected 9 hold ticks, got %d", g.holdTicks)
	}

	pressed := core.NewInputFrame()
	pressed.Set(core.ActionLeft)
	g.trackHeldDir(pressed)

	want := core.Vec2{X: -1}
	if g.heldDir != want {
		t.Fatalf("expected held dir %v, got %v", want, g.heldDir)
	}

	empty := core.NewInputFrame()
	for i := 0; i < g.holdTicks-1; i++ {
		g.trackHeldDir(empty)
		if g.heldDir != want {
			t.Fatalf("direction dropped after %d empty ticks, want %d", i+1, g.holdTicks)
		}
	}
	g.trackHeldDir(empty)
	if !g.heldDir.IsZero() {
		t.Errorf("direction should expire after %d empty ticks, still %v", g.holdTicks, g.heldDir)
	}
}

func TestOpposingKeysCancel(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	both := core.NewInputFrame()
	both.Set(core.ActionLeft)
	both.Set(core.ActionRight)
	both.Set(core.ActionUp)
	g.trackHeldDir(both)

	want := core.Vec2{Y: -1}
	if g.heldDir != want {
		t.Errorf("expected opposing horizontal keys to cancel, got %v", g.heldDir)
	}
}

func TestRestartMidLevel(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	// One tick up collects the push mask right above the start.
	press(g, core.ActionUp)
	if g.masksGot != 1 {
		t.Fatalf("expected mask collected before restart, got %d", g.masksGot)
	}

	press(g, core.ActionRestart)

	if g.masksGot != 0 || g.pushes != 0 || g.runTicks != 0 {
		t.Errorf("metrics should reset: masks=%d pushes=%d ticks=%d",
			g.masksGot, g.pushes, g.runTicks)
	}
	p := g.sim.Player()
	if start := sim.G(4, 2).ToWorld(); p.Pos != start {
		t.Errorf("player should return to %v, got %v", start, p.Pos)
	}
	if len(p.Abilities) != 1 {
		t.Errorf("abilities should reset to bare hands, got %d", len(p.Abilities))
	}
}

func TestRestartAfterWinReplaysFromStart(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	g.won = true
	g.solvedLevels = len(g.sources)
	g.index = len(g.sources) - 1

	press(g, core.ActionRestart)

	if g.won {
		t.Error("restart after winning should clear the won state")
	}
	if g.index != 0 {
		t.Errorf("restart after winning should return to level 0, got %d", g.index)
	}
	if g.State().Score != 0 {
		t.Errorf("score should reset, got %d", g.State().Score)
	}
}

func TestPauseBlocksSimulation(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}

	before := g.sim.Player().Pos
	for i := 0; i < 5; i++ {
		press(g, core.ActionRight)
	}
	if g.sim.Player().Pos != before {
		t.Error("player moved while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Fatal("expected unpaused state")
	}
	for i := 0; i < 5; i++ {
		press(g, core.ActionRight)
	}
	if g.sim.Player().Pos == before {
		t.Error("player should move after unpausing")
	}
}

func TestAbilityKeyCycles(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	g.sim.Player().Acquire(sim.PowerBreak)
	if g.sim.Player().Current != sim.PowerBreak {
		t.Fatalf("acquire should equip, got %v", g.sim.Player().Current)
	}

	press(g, core.ActionAbility)
	if got := g.sim.Player().Current; got != sim.PowerNone {
		t.Errorf("cycling from break with {none, break} should land on none, got %v", got)
	}
	press(g, core.ActionAbility)
	if got := g.sim.Player().Current; got != sim.PowerBreak {
		t.Errorf("cycling from none with {none, break} should land on break, got %v", got)
	}
}

func TestSingleLevelWinAndReplay(t *testing.T) {
	src := levels.Source{ID: "strip", Title: "Strip", Text: "#.$@P#"}
	rec := &captureRecorder{}
	g := NewSingle(src, config.Default(), rec)
	g.Reset(testRuntime())

	if g.ID() != "strip" || g.Title() != "Strip" {
		t.Fatalf("single game should take identity from its level, got %s/%s", g.ID(), g.Title())
	}

	// Right to the mask, then left to push the crystal onto the goal.
	for i := 0; i < 8; i++ {
		press(g, core.ActionRight)
	}
	for i := 0; i < 12; i++ {
		press(g, core.ActionLeft)
	}
	if !g.solved {
		t.Fatal("strip level should be solved by the scripted walk")
	}

	empty := core.NewInputFrame()
	for i := 0; i < g.advanceTicks; i++ {
		g.Step(empty)
	}
	if !g.State().GameOver {
		t.Fatal("solving the only level should end the run")
	}
	if len(rec.entries) != 1 {
		t.Errorf("expected 1 recorded solve, got %d", len(rec.entries))
	}

	press(g, core.ActionRestart)
	if g.State().GameOver {
		t.Error("restart should start a fresh run")
	}
	if g.sim == nil || g.sim.Solved() {
		t.Error("fresh run should load an unsolved level")
	}
}

func TestBrokenLevelIsInert(t *testing.T) {
	src := levels.Source{ID: "broken", Title: "Broken", Text: "###"}
	g := NewSingle(src, config.Default(), nil)
	g.Reset(testRuntime())

	if g.simErr == nil {
		t.Fatal("expected a load error for a level without a player")
	}

	// Stepping and rendering must both be safe.
	press(g, core.ActionRight)
	press(g, core.ActionRestart)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "failed to load") {
		t.Error("render should report the load failure")
	}
}

func TestRenderFrame(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	content := screen.String()

	if !strings.Contains(content, "WAREHOUSE") {
		t.Error("HUD should name the game")
	}
	if !strings.Contains(content, "Push Tutorial") {
		t.Error("HUD should name the current level")
	}
	if !strings.Contains(content, "[none]") {
		t.Error("ability bar should bracket the worn power")
	}
	if !strings.Contains(content, "grab the mask") {
		t.Error("author hints should appear under the map")
	}
	if !strings.Contains(content, "@") {
		t.Error("player glyph missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	g.Reset(testRuntime())

	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("render should warn when the terminal cannot fit the level")
	}
}

func TestCampaignIdentity(t *testing.T) {
	g := NewCampaign(config.Default(), nil)
	if g.ID() != CampaignID {
		t.Errorf("campaign ID should be %q, got %q", CampaignID, g.ID())
	}
	if g.Title() != "The Masked Warehouseperson" {
		t.Errorf("unexpected campaign title %q", g.Title())
	}
}
