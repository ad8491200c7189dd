package core

import "image/color"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a map generator must implement to be driven
// by the viewer: reset with a seed, advance one generation, expose cells.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// PaletteProvider is implemented by sims whose cell values index a fixed
// color table.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// ParameterProvider is implemented by sims that can describe their current
// settings for display.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}
