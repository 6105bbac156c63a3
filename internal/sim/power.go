package sim

// Power is an interaction mode granted by a mask pickup. The ordinal order
// defines the ability-cycling order; PowerNone is always possessed.
type Power int

const (
	PowerNone Power = iota
	PowerPush
	PowerBreak
	PowerIgnore
)

// powerCount is the size of the Power enumeration, the cycling modulus.
const powerCount = 4

// String returns a human-readable name for the power.
func (p Power) String() string {
	switch p {
	case PowerNone:
		return "None"
	case PowerPush:
		return "Push"
	case PowerBreak:
		return "Break"
	case PowerIgnore:
		return "Ignore"
	default:
		return "Unknown"
	}
}

// Mask is a collectible pickup granting a power. It is removed from the
// level on the tick it is collected.
type Mask struct {
	Cell  GridPos
	Power Power
}
