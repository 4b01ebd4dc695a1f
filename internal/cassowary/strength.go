package cassowary

import "math"

// Strength orders constraints. Required constraints must hold; the rest
// are traded off against each other, stronger first.
type Strength float64

// CreateStrength combines three priority tiers and a weight into a
// strength. Each tier is clamped to [0, 1000].
func CreateStrength(a, b, c, w float64) Strength {
	clamp := func(x float64) float64 { return math.Max(0, math.Min(1000, x)) }
	return Strength(clamp(a*w)*1_000_000 + clamp(b*w)*1000 + clamp(c*w))
}

var (
	Required = CreateStrength(1000, 1000, 1000, 1)
	Strong   = CreateStrength(1, 0, 0, 1)
	Medium   = CreateStrength(0, 1, 0, 1)
	Weak     = CreateStrength(0, 0, 1, 1)
)

// Clip bounds s to [0, Required].
func (s Strength) Clip() Strength {
	return Strength(math.Max(0, math.Min(float64(Required), float64(s))))
}

// IsRequired reports whether s is at least Required.
func (s Strength) IsRequired() bool { return s >= Required }

func (s Strength) String() string {
	switch s {
	case Required:
		return "required"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Weak:
		return "weak"
	}
	return "strength(" + formatFloat(float64(s)) + ")"
}
