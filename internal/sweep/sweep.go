// Package sweep runs many independently seeded simulators on a worker pool and
// summarizes how smoothing shifts the terrain composition.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"cave-ca/internal/logging"
	"cave-ca/internal/terrain"
)

// Options configures a sweep.
type Options struct {
	Distribution terrain.Distribution
	Size         int
	Steps        int
	Seeds        []int64
	// Workers defaults to runtime.NumCPU when not positive.
	Workers int
}

// Result describes one seed's run. Compositions cover interior cells only.
type Result struct {
	Seed    int64               `json:"seed"`
	Initial terrain.Composition `json:"initial"`
	Final   terrain.Composition `json:"final"`
	// Changed counts interior cells whose category differs between the
	// randomized grid and the final generation.
	Changed int `json:"changed"`
}

// Summary averages a set of results.
type Summary struct {
	Runs        int                  `json:"runs"`
	Initial     terrain.Distribution `json:"initial"`
	Final       terrain.Distribution `json:"final"`
	MeanChanged float64              `json:"mean_changed"`
}

// Seeds returns count consecutive seeds starting at base.
func Seeds(base int64, count int) []int64 {
	if count <= 0 {
		return nil
	}
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	return seeds
}

// Run simulates every seed in opts and returns the results ordered by seed.
// Each simulator is owned by a single worker for its whole run. Cancelling
// ctx stops dispatching new seeds and makes Run return ctx.Err().
func Run(ctx context.Context, opts Options, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if _, err := terrain.New(opts.Distribution, opts.Size, 0); err != nil {
		return nil, err
	}
	if opts.Steps < 0 {
		return nil, fmt.Errorf("sweep: steps must be non-negative, got %d", opts.Steps)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(opts.Seeds) {
		workers = len(opts.Seeds)
	}

	jobs := make(chan int64)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(opts, seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range opts.Seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	all := make([]Result, 0, len(opts.Seeds))
	for res := range results {
		all = append(all, res)
		logger.Debug("seed finished", "seed", res.Seed, "done", len(all), "total", len(opts.Seeds))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })
	logger.Info("sweep finished",
		"runs", len(all),
		"workers", workers,
		"size", opts.Size,
		"steps", opts.Steps,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return all, nil
}

func runSeed(opts Options, seed int64) Result {
	sim, err := terrain.New(opts.Distribution, opts.Size, seed)
	if err != nil {
		// Options were validated before any worker started.
		panic(err)
	}
	sim.Randomize()
	initial := sim.Snapshot()
	sim.Run(opts.Steps)
	final := sim.Snapshot()

	changed := 0
	n := initial.Size()
	for row := 1; row < n-1; row++ {
		for col := 1; col < n-1; col++ {
			if initial.At(row, col) != final.At(row, col) {
				changed++
			}
		}
	}
	return Result{
		Seed:    seed,
		Initial: initial.InteriorComposition(),
		Final:   final.InteriorComposition(),
		Changed: changed,
	}
}

// Summarize averages per-run fractions and change counts.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	changed := 0
	for _, r := range results {
		in, out := r.Initial.Fractions(), r.Final.Fractions()
		s.Initial.Water += in.Water
		s.Initial.Swamp += in.Swamp
		s.Initial.Rock += in.Rock
		s.Final.Water += out.Water
		s.Final.Swamp += out.Swamp
		s.Final.Rock += out.Rock
		changed += r.Changed
	}
	runs := float64(len(results))
	s.Initial = terrain.Distribution{Water: s.Initial.Water / runs, Swamp: s.Initial.Swamp / runs, Rock: s.Initial.Rock / runs}
	s.Final = terrain.Distribution{Water: s.Final.Water / runs, Swamp: s.Final.Swamp / runs, Rock: s.Final.Rock / runs}
	s.MeanChanged = float64(changed) / runs
	return s
}
