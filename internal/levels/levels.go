// Package levels provides the built-in campaign and loads level packs
// from disk. A level source holds raw grid text only; parsing lives in
// the sim package and rule checking in the validate package, so a source
// can be registered, listed and stored without ever being playable.
package levels

// Source is one playable level: a stable identifier keying its solve
// records, a display title and the textual grid handed to the simulation.
type Source struct {
	ID    string
	Title string
	Text  string
}
