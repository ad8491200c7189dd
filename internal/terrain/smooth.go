package terrain

// mooreSize is the number of cells in the Moore neighborhood.
const mooreSize = 8

// neighborCounts holds the number of neighbors per category, indexed by
// Category.
type neighborCounts [numCategories]int

type split int

const (
	// splitPlurality: some category has the strictly highest count.
	splitPlurality split = iota
	// splitNoDominant: a 3/3/2 division, the cell keeps its category.
	splitNoDominant
	// splitCoDominant: a 4/4/0 division, a coin picks one of the pair.
	splitCoDominant
)

// countNeighbors counts rock and swamp among the 8 neighbors of (i, j) in the
// current buffer and derives water from the remainder. (i, j) must be an
// interior cell so every neighbor is in bounds.
func (s *Simulator) countNeighbors(i, j int) neighborCounts {
	var counts neighborCounts
	n := s.n
	for di := -1; di <= 1; di++ {
		row := (i + di) * n
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			switch s.cur[row+j+dj] {
			case Rock:
				counts[Rock]++
			case Swamp:
				counts[Swamp]++
			}
		}
	}
	counts[Water] = mooreSize - counts[Rock] - counts[Swamp]
	return counts
}

func classify(c neighborCounts) split {
	water, swamp, rock := c[Water], c[Swamp], c[Rock]
	switch {
	case (rock == 3 && swamp == 3) || (rock == 3 && water == 3) || (water == 3 && swamp == 3):
		return splitNoDominant
	case (rock == 4 && swamp == 4) || (rock == 4 && water == 4) || (water == 4 && swamp == 4):
		return splitCoDominant
	}
	return splitPlurality
}

// next applies the smoothing rule to a single interior cell.
func (s *Simulator) next(current Category, c neighborCounts) Category {
	switch classify(c) {
	case splitNoDominant:
		return current
	case splitCoDominant:
		return coinFlip(c, s.rng.Float64())
	default:
		return plurality(c)
	}
}

// coinFlip picks between the two tied categories of a 4/4/0 split. A coin
// above one half favors the first category of each pair.
func coinFlip(c neighborCounts, coin float64) Category {
	heads := coin > 0.5
	switch {
	case c[Water] == 0:
		if heads {
			return Rock
		}
		return Swamp
	case c[Rock] == 0:
		if heads {
			return Water
		}
		return Swamp
	default:
		if heads {
			return Water
		}
		return Rock
	}
}

// plurality returns the category with the highest count, keeping the first
// maximum in scanOrder.
func plurality(c neighborCounts) Category {
	best, top := scanOrder[0], -1
	for _, cat := range scanOrder {
		if c[cat] > top {
			best, top = cat, c[cat]
		}
	}
	return best
}
