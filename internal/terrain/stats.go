package terrain

// Composition counts cells per category.
type Composition struct {
	Water int `json:"water"`
	Swamp int `json:"swamp"`
	Rock  int `json:"rock"`
}

// Total returns the number of counted cells.
func (c Composition) Total() int { return c.Water + c.Swamp + c.Rock }

// Count returns the number of cells holding cat.
func (c Composition) Count(cat Category) int {
	switch cat {
	case Water:
		return c.Water
	case Swamp:
		return c.Swamp
	case Rock:
		return c.Rock
	}
	return 0
}

// Fractions converts the counts into a Distribution. An empty composition
// yields the zero Distribution.
func (c Composition) Fractions() Distribution {
	total := c.Total()
	if total == 0 {
		return Distribution{}
	}
	t := float64(total)
	return Distribution{
		Water: float64(c.Water) / t,
		Swamp: float64(c.Swamp) / t,
		Rock:  float64(c.Rock) / t,
	}
}

func (c *Composition) add(cat Category) {
	switch cat {
	case Water:
		c.Water++
	case Swamp:
		c.Swamp++
	case Rock:
		c.Rock++
	}
}

// Composition counts every cell of the grid.
func (g Grid) Composition() Composition {
	var comp Composition
	for _, v := range g.cells {
		comp.add(v)
	}
	return comp
}

// InteriorComposition counts only the cells off the border, which are the
// ones drawn from the configured distribution.
func (g Grid) InteriorComposition() Composition {
	var comp Composition
	for row := 1; row < g.n-1; row++ {
		for _, v := range g.cells[row*g.n+1 : (row+1)*g.n-1] {
			comp.add(v)
		}
	}
	return comp
}
