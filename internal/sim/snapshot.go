package sim

import (
	"fmt"
	"hash/fnv"
)

// Snapshot returns a hash of the complete mutable state. Two simulations
// built from the same level and fed identical input sequences must produce
// identical hashes after every tick; determinism tests rely on this.
func (s *Sim) Snapshot() uint64 {
	h := fnv.New64a()

	p := s.player
	fmt.Fprintf(h, "P:%.6f,%.6f;C:%d;A:", p.Pos.X, p.Pos.Y, p.Current)
	for pw := Power(0); pw < Power(powerCount); pw++ {
		if p.Abilities[pw] {
			fmt.Fprintf(h, "%d,", pw)
		}
	}

	fmt.Fprintf(h, ";B:")
	for _, b := range s.boxes {
		fmt.Fprintf(h, "%d:%d:%v,", b.Cell.X, b.Cell.Y, b.sliding)
	}

	fmt.Fprintf(h, ";M:")
	for _, m := range s.level.Masks {
		fmt.Fprintf(h, "%d:%d:%d,", m.Cell.X, m.Cell.Y, m.Power)
	}

	fmt.Fprintf(h, ";S:%d;T:%d", len(s.shatters), s.tick)

	return h.Sum64()
}
