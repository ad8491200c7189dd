package terrain

import (
	"image/color"
	"strconv"

	"cave-ca/internal/core"
)

var cavePalette = []color.RGBA{
	Water: {R: 40, G: 96, B: 200, A: 255},
	Swamp: {R: 96, G: 120, B: 48, A: 255},
	Rock:  {R: 120, G: 120, B: 120, A: 255},
}

// Palette returns the colors renderers should use, indexed by Category.
func (s *Simulator) Palette() []color.RGBA {
	return cavePalette
}

// Parameters reports the simulator settings for display.
func (s *Simulator) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("size", "Size", s.n),
				int64Param("seed", "Seed", s.seed),
				intParam("generation", "Generation", s.generation),
			},
		},
		{
			Name: "Distribution",
			Params: []core.Parameter{
				floatParam("water", "Water", s.dist.Water),
				floatParam("swamp", "Swamp", s.dist.Swamp),
				floatParam("rock", "Rock", s.dist.Rock),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
