package terrain

import (
	"errors"
	"math"
	"slices"
	"testing"
)

const (
	W = Water
	S = Swamp
	R = Rock
)

// loaded returns a simulator whose current buffer holds rows.
func loaded(t *testing.T, rows [][]Category, seed int64) *Simulator {
	t.Helper()
	s, err := New(Even(), len(rows), seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, row := range rows {
		if len(row) != s.n {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), s.n)
		}
		copy(s.cur[i*s.n:], row)
	}
	s.refreshDisplay()
	return s
}

func TestNewValidatesDistribution(t *testing.T) {
	cases := []struct {
		name string
		dist Distribution
		ok   bool
	}{
		{"even", Even(), true},
		{"slightly over", Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.2005}, true},
		{"slightly under", Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.1995}, true},
		{"all water", Distribution{Water: 1}, true},
		{"sum 1.01", Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.21}, false},
		{"sum 0.9", Distribution{Water: 0.4, Swamp: 0.3, Rock: 0.2}, false},
		{"negative", Distribution{Water: 1.2, Swamp: -0.2, Rock: 0}, false},
		{"zero", Distribution{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.dist, 10, 1)
			if tc.ok {
				if err != nil || s == nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrDistributionNotNormalized) {
				t.Fatalf("expected ErrDistributionNotNormalized, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Kind != DistributionNotNormalized {
				t.Fatalf("expected ConfigError of kind DistributionNotNormalized, got %#v", err)
			}
			if errors.Is(err, ErrGridTooSmall) {
				t.Fatal("distribution error must not match ErrGridTooSmall")
			}
		})
	}
}

func TestNewRejectsSmallGrid(t *testing.T) {
	for _, size := range []int{-1, 0, 1, 2} {
		_, err := New(Even(), size, 1)
		if !errors.Is(err, ErrGridTooSmall) {
			t.Fatalf("size %d: expected ErrGridTooSmall, got %v", size, err)
		}
	}
	if _, err := New(Even(), MinSize, 1); err != nil {
		t.Fatalf("size %d should be accepted: %v", MinSize, err)
	}
}

func TestNewFromFractionsMatchesNew(t *testing.T) {
	a, err := NewFromFractions(0.5, 0.3, 0.2, 12, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.2}, 12, 5)
	if err != nil {
		t.Fatal(err)
	}
	a.Randomize()
	b.Randomize()
	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Fatal("positional and struct constructors diverged")
	}
}

func TestNewStartsZeroed(t *testing.T) {
	s, err := New(Even(), 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Count(Water); got != 16 {
		t.Fatalf("fresh grid should be all water, got %d water cells", got)
	}
	if s.Generation() != 0 {
		t.Fatalf("generation = %d, want 0", s.Generation())
	}
}

func assertBorderRock(t *testing.T, g Grid, when string) {
	t.Helper()
	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if g.IsBorder(row, col) && g.At(row, col) != Rock {
				t.Fatalf("%s: border cell (%d,%d) is %v", when, row, col, g.At(row, col))
			}
		}
	}
}

func TestBorderStaysRock(t *testing.T) {
	dists := []Distribution{
		Even(),
		{Water: 1},
		{Swamp: 1},
		{Water: 0.5, Swamp: 0.3, Rock: 0.2},
	}
	for size := MinSize; size <= 12; size++ {
		for seed := int64(0); seed < 4; seed++ {
			for _, dist := range dists {
				s, err := New(dist, size, seed)
				if err != nil {
					t.Fatal(err)
				}
				s.Randomize()
				assertBorderRock(t, s.Snapshot(), "after randomize")
				for step := 0; step < 5; step++ {
					s.Step()
					assertBorderRock(t, s.Snapshot(), "after step")
				}
			}
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	dist := Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.2}
	a, _ := New(dist, 40, 99)
	b, _ := New(dist, 40, 99)

	a.Randomize()
	b.Randomize()
	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Fatal("randomize not deterministic for equal seeds")
	}
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
		if !a.Snapshot().Equal(b.Snapshot()) {
			t.Fatalf("grids diverged after step %d", i+1)
		}
	}

	c, _ := New(dist, 40, 100)
	c.Randomize()
	d, _ := New(dist, 40, 99)
	d.Randomize()
	if c.Snapshot().Equal(d.Snapshot()) {
		t.Fatal("different seeds should produce different initial grids")
	}
}

func TestResetReplaysSeed(t *testing.T) {
	s, _ := New(Even(), 24, 7)
	s.Randomize()
	s.Run(3)
	want := s.Snapshot()

	s.Reset(1234)
	if s.Seed() != 1234 || s.Generation() != 0 {
		t.Fatalf("reset state: seed=%d generation=%d", s.Seed(), s.Generation())
	}
	s.Reset(7)
	s.Run(3)
	if !s.Snapshot().Equal(want) {
		t.Fatal("reset with the original seed should replay the same generations")
	}
}

func TestDistributionConvergence(t *testing.T) {
	dist := Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.2}
	for seed := int64(1); seed <= 3; seed++ {
		s, err := New(dist, 402, seed)
		if err != nil {
			t.Fatal(err)
		}
		s.Randomize()
		got := s.Snapshot().InteriorComposition().Fractions()
		for _, c := range Categories() {
			if diff := math.Abs(got.Fraction(c) - dist.Fraction(c)); diff > 0.01 {
				t.Fatalf("seed %d: %v fraction %.4f, want %.4f", seed, c, got.Fraction(c), dist.Fraction(c))
			}
		}
	}
}

func TestNoDominantKeepsCategory(t *testing.T) {
	// Neighbors of (2,2): water=3, swamp=3, rock=2.
	rows := [][]Category{
		{R, R, R, R, R},
		{R, W, W, W, R},
		{R, S, R, S, R},
		{R, S, R, R, R},
		{R, R, R, R, R},
	}
	for _, current := range Categories() {
		rows[2][2] = current
		s := loaded(t, rows, 1)
		if got := s.countNeighbors(2, 2); got != (neighborCounts{Water: 3, Swamp: 3, Rock: 2}) {
			t.Fatalf("fixture counts = %v", got)
		}
		s.Step()
		if got := s.Snapshot().At(2, 2); got != current {
			t.Fatalf("no-dominant cell changed from %v to %v", current, got)
		}
	}
}

func TestCoDominantPicksOneOfPair(t *testing.T) {
	// Neighbors of (2,2): rock=4, swamp=4, water=0.
	rows := [][]Category{
		{R, R, R, R, R},
		{R, R, R, R, R},
		{R, R, W, S, R},
		{R, S, S, S, R},
		{R, R, R, R, R},
	}
	const trials = 400
	rock, swamp := 0, 0
	for seed := int64(0); seed < trials; seed++ {
		s := loaded(t, rows, seed)
		s.Step()
		switch got := s.Snapshot().At(2, 2); got {
		case Rock:
			rock++
		case Swamp:
			swamp++
		default:
			t.Fatalf("seed %d: co-dominant cell became %v", seed, got)
		}
	}
	if rock < trials*35/100 || swamp < trials*35/100 {
		t.Fatalf("coin flip skewed: rock=%d swamp=%d", rock, swamp)
	}
}

func TestCoinFlipConvention(t *testing.T) {
	cases := []struct {
		counts      neighborCounts
		heads, tail Category
	}{
		{neighborCounts{Water: 0, Swamp: 4, Rock: 4}, Rock, Swamp},
		{neighborCounts{Water: 4, Swamp: 4, Rock: 0}, Water, Swamp},
		{neighborCounts{Water: 4, Swamp: 0, Rock: 4}, Water, Rock},
	}
	for _, tc := range cases {
		if got := coinFlip(tc.counts, 0.75); got != tc.heads {
			t.Fatalf("%v coin 0.75 = %v, want %v", tc.counts, got, tc.heads)
		}
		if got := coinFlip(tc.counts, 0.5); got != tc.tail {
			t.Fatalf("%v coin 0.5 = %v, want %v", tc.counts, got, tc.tail)
		}
		if got := coinFlip(tc.counts, 0.1); got != tc.tail {
			t.Fatalf("%v coin 0.1 = %v, want %v", tc.counts, got, tc.tail)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		counts neighborCounts
		want   split
	}{
		{neighborCounts{Water: 3, Swamp: 3, Rock: 2}, splitNoDominant},
		{neighborCounts{Water: 3, Swamp: 2, Rock: 3}, splitNoDominant},
		{neighborCounts{Water: 2, Swamp: 3, Rock: 3}, splitNoDominant},
		{neighborCounts{Water: 4, Swamp: 4, Rock: 0}, splitCoDominant},
		{neighborCounts{Water: 4, Swamp: 0, Rock: 4}, splitCoDominant},
		{neighborCounts{Water: 0, Swamp: 4, Rock: 4}, splitCoDominant},
		{neighborCounts{Water: 5, Swamp: 3, Rock: 0}, splitPlurality},
		{neighborCounts{Water: 4, Swamp: 2, Rock: 2}, splitPlurality},
		{neighborCounts{Water: 8}, splitPlurality},
	}
	for _, tc := range cases {
		if got := classify(tc.counts); got != tc.want {
			t.Fatalf("classify(%v) = %d, want %d", tc.counts, got, tc.want)
		}
	}
}

func TestPluralityScanOrder(t *testing.T) {
	cases := []struct {
		counts neighborCounts
		want   Category
	}{
		{neighborCounts{Water: 6, Swamp: 1, Rock: 1}, Water},
		{neighborCounts{Water: 1, Swamp: 6, Rock: 1}, Swamp},
		{neighborCounts{Water: 1, Swamp: 1, Rock: 6}, Rock},
		{neighborCounts{Water: 5, Swamp: 3, Rock: 0}, Water},
		{neighborCounts{Water: 2, Swamp: 2, Rock: 4}, Rock},
		// Ties that cannot arise from 8 neighbors still follow the scan order.
		{neighborCounts{Water: 2, Swamp: 2, Rock: 2}, Water},
		{neighborCounts{Water: 0, Swamp: 3, Rock: 3}, Swamp},
	}
	for _, tc := range cases {
		if got := plurality(tc.counts); got != tc.want {
			t.Fatalf("plurality(%v) = %v, want %v", tc.counts, got, tc.want)
		}
	}
}

func TestPluralityStep(t *testing.T) {
	// Neighbors of (2,2): water=5, swamp=3, rock=0.
	rows := [][]Category{
		{R, R, R, R, R},
		{R, W, W, W, R},
		{R, W, R, W, R},
		{R, S, S, S, R},
		{R, R, R, R, R},
	}
	s := loaded(t, rows, 1)
	s.Step()
	if got := s.Snapshot().At(2, 2); got != Water {
		t.Fatalf("5/3/0 cell became %v, want water", got)
	}
}

func TestAllWaterScenario(t *testing.T) {
	s, err := NewFromFractions(1, 0, 0, 5, 42)
	if err != nil {
		t.Fatal(err)
	}
	s.Randomize()
	g := s.Snapshot()
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			want := Water
			if g.IsBorder(row, col) {
				want = Rock
			}
			if got := g.At(row, col); got != want {
				t.Fatalf("after randomize (%d,%d) = %v, want %v", row, col, got, want)
			}
		}
	}

	// Interior corners see five border rocks and turn to rock; every other
	// interior cell has a water majority and stays water.
	s.Step()
	want, err := GridFromRows([][]Category{
		{R, R, R, R, R},
		{R, R, W, R, R},
		{R, W, W, W, R},
		{R, R, W, R, R},
		{R, R, R, R, R},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot(); !got.Equal(want) {
		t.Fatalf("after one step:\n%swant:\n%s", got, want)
	}

	// With the corners walled in, the edge midpoints now see five rocks and
	// the center sees a 4/4/0 water/rock split.
	s.Step()
	g = s.Snapshot()
	for _, cell := range [][2]int{{1, 2}, {2, 1}, {2, 3}, {3, 2}} {
		if got := g.At(cell[0], cell[1]); got != Rock {
			t.Fatalf("second step (%d,%d) = %v, want rock", cell[0], cell[1], got)
		}
	}
	if got := g.At(2, 2); got != Water && got != Rock {
		t.Fatalf("center after second step = %v, want water or rock", got)
	}
}

func TestLargeWaterInteriorIsStable(t *testing.T) {
	s, _ := NewFromFractions(1, 0, 0, 9, 1)
	s.Randomize()
	s.Step()
	g := s.Snapshot()
	for row := 2; row <= 6; row++ {
		for col := 2; col <= 6; col++ {
			if g.At(row, col) != Water {
				t.Fatalf("deep interior (%d,%d) = %v", row, col, g.At(row, col))
			}
		}
	}
}

func TestStepBeforeRandomize(t *testing.T) {
	s, _ := New(Even(), 6, 3)
	s.Step()
	g := s.Snapshot()
	assertBorderRock(t, g, "step on zero grid")
	if s.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", s.Generation())
	}
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	s, _ := New(Even(), 16, 8)
	s.Randomize()
	snap := s.Snapshot()
	before := snap.Cells()

	rows := snap.Rows()
	rows[1][1] = Swamp
	cells := snap.Cells()
	cells[0] = Water
	if !slices.Equal(before, snap.Cells()) {
		t.Fatal("mutating copies changed the snapshot")
	}

	s.Run(4)
	if !slices.Equal(before, snap.Cells()) {
		t.Fatal("snapshot changed after simulator steps")
	}
}

func TestBuffersAreReused(t *testing.T) {
	s, _ := New(Even(), 8, 2)
	s.Randomize()
	a, b := &s.cur[0], &s.nxt[0]
	s.Step()
	if &s.cur[0] != b || &s.nxt[0] != a {
		t.Fatal("step should swap buffers without reallocating")
	}
}

func TestCellsMirrorSnapshot(t *testing.T) {
	s, _ := New(Distribution{Water: 0.4, Swamp: 0.4, Rock: 0.2}, 20, 11)
	s.Randomize()
	for gen := 0; gen < 3; gen++ {
		snap := s.Snapshot().Cells()
		cells := s.Cells()
		if len(cells) != len(snap) {
			t.Fatalf("display has %d cells, want %d", len(cells), len(snap))
		}
		for i := range snap {
			if Category(cells[i]) != snap[i] {
				t.Fatalf("generation %d cell %d: display %d, grid %v", gen, i, cells[i], snap[i])
			}
		}
		s.Step()
	}

	s.Cells()[0] = uint8(Water)
	if s.Snapshot().At(0, 0) != Rock {
		t.Fatal("writing to the display buffer must not touch the grid")
	}
}

func TestParametersReportSettings(t *testing.T) {
	s, _ := New(Distribution{Water: 0.5, Swamp: 0.3, Rock: 0.2}, 20, 9)
	s.Randomize()
	s.Run(2)
	snap := s.Parameters()
	checks := map[string]string{
		"size":       "20",
		"seed":       "9",
		"generation": "2",
		"water":      "0.5",
		"swamp":      "0.3",
		"rock":       "0.2",
	}
	for key, want := range checks {
		p, ok := snap.Lookup(key)
		if !ok {
			t.Fatalf("missing parameter %q", key)
		}
		if p.Value != want {
			t.Fatalf("%s = %q, want %q", key, p.Value, want)
		}
	}
	if len(s.Palette()) != numCategories {
		t.Fatalf("palette has %d entries", len(s.Palette()))
	}
}
