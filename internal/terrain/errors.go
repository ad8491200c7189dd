package terrain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies construction failures.
type ErrorKind int

const (
	// DistributionNotNormalized means the three fractions do not sum to 1
	// within Epsilon, or one of them is negative.
	DistributionNotNormalized ErrorKind = iota + 1
	// GridTooSmall means the grid cannot hold a border plus one interior cell.
	GridTooSmall
)

var (
	ErrDistributionNotNormalized = errors.New("terrain: distribution does not add up to 1")
	ErrGridTooSmall              = errors.New("terrain: grid too small")
)

// ConfigError reports an invalid simulator configuration. It is only ever
// returned from construction.
type ConfigError struct {
	Kind ErrorKind

	Distribution Distribution
	Size         int
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case DistributionNotNormalized:
		d := e.Distribution
		return fmt.Sprintf("%v: water=%g swamp=%g rock=%g (sum %g)",
			ErrDistributionNotNormalized, d.Water, d.Swamp, d.Rock, d.Sum())
	case GridTooSmall:
		return fmt.Sprintf("%v: size %d, need at least %d", ErrGridTooSmall, e.Size, MinSize)
	default:
		return "terrain: invalid configuration"
	}
}

// Is lets errors.Is match a ConfigError against the package sentinels.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrDistributionNotNormalized:
		return e.Kind == DistributionNotNormalized
	case ErrGridTooSmall:
		return e.Kind == GridTooSmall
	}
	return false
}
