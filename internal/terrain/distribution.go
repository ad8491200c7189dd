package terrain

import "math"

// Epsilon is the tolerance allowed between the distribution sum and 1.
const Epsilon = 0.001

// Distribution holds the initial fraction of each category.
type Distribution struct {
	Water float64 `yaml:"water" json:"water"`
	Swamp float64 `yaml:"swamp" json:"swamp"`
	Rock  float64 `yaml:"rock" json:"rock"`
}

// Even returns a distribution with a third of each category.
func Even() Distribution {
	return Distribution{Water: 1.0 / 3, Swamp: 1.0 / 3, Rock: 1.0 / 3}
}

// Sum returns Water+Swamp+Rock.
func (d Distribution) Sum() float64 { return d.Water + d.Swamp + d.Rock }

// Fraction returns the configured fraction for c.
func (d Distribution) Fraction(c Category) float64 {
	switch c {
	case Water:
		return d.Water
	case Swamp:
		return d.Swamp
	case Rock:
		return d.Rock
	}
	return 0
}

// Validate checks the fractions are non-negative and normalized.
func (d Distribution) Validate() error {
	if d.Water < 0 || d.Swamp < 0 || d.Rock < 0 || math.IsNaN(d.Sum()) || math.Abs(d.Sum()-1) > Epsilon {
		return &ConfigError{Kind: DistributionNotNormalized, Distribution: d}
	}
	return nil
}

// pick maps a uniform draw r in [0,1) to a category by walking drawOrder:
// [0,swamp) is swamp, [swamp,swamp+rock) is rock, the rest is water.
func (d Distribution) pick(r float64) Category {
	upper := 0.0
	for _, c := range drawOrder[:numCategories-1] {
		upper += d.Fraction(c)
		if r < upper {
			return c
		}
	}
	return drawOrder[numCategories-1]
}
