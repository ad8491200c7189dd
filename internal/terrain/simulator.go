package terrain

import (
	"cave-ca/internal/core"
	pcore "cave-ca/pkg/core"
)

// Simulator owns a double-buffered N×N grid and evolves it one generation at a
// time. It is not safe for concurrent use; a single driver is expected to call
// Randomize once and Step repeatedly.
//
// Calling Step before Randomize is allowed and smooths the zero grid, which
// is all water apart from the border.
type Simulator struct {
	n    int
	dist Distribution
	seed int64

	generation int

	cur     []Category
	nxt     []Category
	display []uint8

	rng *pcore.RNG
}

// New validates the configuration and allocates both buffers. The buffers are
// reused for the simulator's whole lifetime.
func New(dist Distribution, size int, seed int64) (*Simulator, error) {
	if err := dist.Validate(); err != nil {
		return nil, err
	}
	if size < MinSize {
		return nil, &ConfigError{Kind: GridTooSmall, Size: size}
	}
	total := size * size
	return &Simulator{
		n:       size,
		dist:    dist,
		seed:    seed,
		cur:     make([]Category, total),
		nxt:     make([]Category, total),
		display: make([]uint8, total),
		rng:     pcore.NewRNG(seed),
	}, nil
}

// NewFromFractions is New with the fractions passed positionally.
func NewFromFractions(pWater, pSwamp, pRock float64, size int, seed int64) (*Simulator, error) {
	return New(Distribution{Water: pWater, Swamp: pSwamp, Rock: pRock}, size, seed)
}

// Name returns the simulation identifier.
func (s *Simulator) Name() string { return "cave" }

// Size returns the grid dimensions.
func (s *Simulator) Size() core.Size { return core.Size{W: s.n, H: s.n} }

// Dim returns the grid dimension N.
func (s *Simulator) Dim() int { return s.n }

// Distribution returns the configured initial fractions.
func (s *Simulator) Distribution() Distribution { return s.dist }

// Seed returns the seed the generator was last started from.
func (s *Simulator) Seed() int64 { return s.seed }

// Generation reports how many Steps ran since the last Randomize.
func (s *Simulator) Generation() int { return s.generation }

// Randomize stamps the border as rock and fills every interior cell with a
// weighted random draw. Cells are visited in row-major order.
func (s *Simulator) Randomize() {
	n := s.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := i*n + j
			if isBorder(n, i, j) {
				s.cur[idx] = Rock
				continue
			}
			s.cur[idx] = s.dist.pick(s.rng.Float64())
		}
	}
	s.generation = 0
	s.refreshDisplay()
}

// Reset restarts the generator from seed and randomizes the grid.
func (s *Simulator) Reset(seed int64) {
	s.seed = seed
	s.rng.Reseed(seed)
	s.Randomize()
}

// Step advances the simulation by exactly one generation.
func (s *Simulator) Step() {
	if len(s.cur) != len(s.nxt) || len(s.cur) != s.n*s.n {
		panic("terrain: simulator buffers out of shape")
	}
	n := s.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := i*n + j
			if isBorder(n, i, j) {
				s.nxt[idx] = Rock
				continue
			}
			s.nxt[idx] = s.next(s.cur[idx], s.countNeighbors(i, j))
		}
	}
	s.cur, s.nxt = s.nxt, s.cur
	s.generation++
	s.refreshDisplay()
}

// Run calls Step the given number of times.
func (s *Simulator) Run(steps int) {
	for i := 0; i < steps; i++ {
		s.Step()
	}
}

// Snapshot returns an immutable copy of the current grid. The copy stays valid
// after further steps.
func (s *Simulator) Snapshot() Grid {
	return newGrid(s.n, s.cur)
}

// Cells exposes the display buffer: one category ordinal per cell in
// row-major order, refreshed after every Randomize and Step. Writing to it
// does not affect the simulation.
func (s *Simulator) Cells() []uint8 { return s.display }

func (s *Simulator) refreshDisplay() {
	for i, c := range s.cur {
		s.display[i] = uint8(c)
	}
}
