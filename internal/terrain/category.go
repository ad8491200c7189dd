// Package terrain generates three-category cave maps: a seeded random fill
// followed by repeated majority-vote smoothing over the Moore neighborhood.
package terrain

import "fmt"

// Category is the terrain label of a single cell. The ordinals are part of the
// contract: they are what the text dump prints and what renderers index
// palettes with.
type Category uint8

const (
	Water Category = iota
	Swamp
	Rock
)

// numCategories is the size of the closed Category enumeration.
const numCategories = 3

// scanOrder is the order in which neighbor counts are scanned when picking a
// plurality winner; the first maximum wins.
var scanOrder = [numCategories]Category{Water, Swamp, Rock}

// drawOrder is the order in which [0,1) is partitioned during Randomize.
var drawOrder = [numCategories]Category{Swamp, Rock, Water}

// Categories lists every category in ordinal order.
func Categories() []Category {
	return []Category{Water, Swamp, Rock}
}

func (c Category) String() string {
	switch c {
	case Water:
		return "water"
	case Swamp:
		return "swamp"
	case Rock:
		return "rock"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool { return c < numCategories }

// ParseCategory maps a category name back to its value.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "water":
		return Water, nil
	case "swamp":
		return Swamp, nil
	case "rock":
		return Rock, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
