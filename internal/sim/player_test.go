package sim

import (
	"testing"

	"github.com/undermask/warehouse/internal/core"
)

func newTestPlayer() *Player {
	return NewPlayer(core.Vec2{X: 64, Y: 64}, 0.7*TileSize)
}

func TestPlayerStartsBareHanded(t *testing.T) {
	p := newTestPlayer()
	if p.Current != PowerNone {
		t.Errorf("new player Current = %v, expected PowerNone", p.Current)
	}
	if !p.Has(PowerNone) || p.Has(PowerPush) || p.Has(PowerBreak) || p.Has(PowerIgnore) {
		t.Error("new player should hold only PowerNone")
	}
}

func TestPlayerCycleWithNoMasks(t *testing.T) {
	p := newTestPlayer()
	for i := 0; i < 3; i++ {
		p.CycleNext()
		if p.Current != PowerNone {
			t.Fatalf("cycle %d: Current = %v, expected PowerNone to stick", i, p.Current)
		}
	}
}

func TestPlayerAcquireAutoEquips(t *testing.T) {
	p := newTestPlayer()

	p.Acquire(PowerBreak)
	if p.Current != PowerBreak {
		t.Errorf("Current = %v after acquiring break, expected PowerBreak", p.Current)
	}
	p.Acquire(PowerPush)
	if p.Current != PowerPush {
		t.Errorf("Current = %v after acquiring push, expected the newest mask equipped", p.Current)
	}
	if !p.Has(PowerBreak) {
		t.Error("earlier mask should still be held")
	}
}

func TestPlayerCycleSkipsUnheld(t *testing.T) {
	p := newTestPlayer()
	p.Acquire(PowerPush)
	p.Acquire(PowerBreak)

	// Holding NONE, PUSH and BREAK but not IGNORE: the wheel must jump
	// straight from BREAK back to NONE.
	want := []Power{PowerNone, PowerPush, PowerBreak, PowerNone, PowerPush}
	for i, w := range want {
		p.CycleNext()
		if p.Current != w {
			t.Fatalf("cycle %d: Current = %v, expected %v", i, p.Current, w)
		}
	}
}

func TestPlayerCycleFullWheel(t *testing.T) {
	p := newTestPlayer()
	p.Acquire(PowerPush)
	p.Acquire(PowerBreak)
	p.Acquire(PowerIgnore)

	want := []Power{PowerNone, PowerPush, PowerBreak, PowerIgnore, PowerNone}
	for i, w := range want {
		p.CycleNext()
		if p.Current != w {
			t.Fatalf("cycle %d: Current = %v, expected %v", i, p.Current, w)
		}
	}
}

func TestPlayerRect(t *testing.T) {
	p := newTestPlayer()
	r := p.Rect()
	if r.X != 64 || r.Y != 64 {
		t.Errorf("rect origin = (%v,%v), expected the position (64,64)", r.X, r.Y)
	}
	if r.W != p.Size || r.H != p.Size {
		t.Errorf("rect size = (%v,%v), expected %v square", r.W, r.H, p.Size)
	}
}
