//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"cave-ca/internal/core"
	"cave-ca/internal/logging"
	"cave-ca/internal/render"
	"cave-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 200

var fallbackPalette = []color.RGBA{
	{A: 255},
	{R: 128, G: 128, B: 128, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// Game adapts a core simulation to the ebiten.Game interface. It shows the
// randomized map first, then advances one generation per pause interval
// until the step budget is spent.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	pacer   *core.FixedStep
	palette []color.RGBA
	logger  *slog.Logger

	scale      int
	maxSteps   int
	generation int
	paused     bool
	tickOnce   bool
	seed       int64
}

// New constructs a Game for the provided simulation, which must already have
// been reset with opts.Seed.
func New(sim core.Sim, opts Options, logger *slog.Logger) *Game {
	if logger == nil {
		logger = logging.Discard()
	}
	size := sim.Size()
	palette := fallbackPalette
	if provider, ok := sim.(core.PaletteProvider); ok {
		palette = provider.Palette()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, hudWidth),
		pacer:    core.NewFixedStep(opts.Pause),
		palette:  palette,
		logger:   logger,
		scale:    scale,
		maxSteps: opts.Steps,
		seed:     opts.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.generation = 0
	g.tickOnce = false
	g.pacer.Restart()
	g.logger.Info("map reset", "seed", seed)
}

func (g *Game) finished() bool {
	return g.maxSteps > 0 && g.generation >= g.maxSteps
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	advance := g.tickOnce
	if !g.paused && !g.finished() && g.pacer.ShouldStep() {
		advance = true
	}
	if advance {
		g.sim.Step()
		g.generation++
		g.tickOnce = false
		g.logger.Debug("generation", "n", g.generation, "seed", g.seed)
		if g.finished() {
			g.logger.Info("simulation finished", "generations", g.generation)
		}
	}

	g.hud.Update(g.status())
	return nil
}

func (g *Game) status() string {
	switch {
	case g.paused:
		return fmt.Sprintf("gen %d  paused", g.generation)
	case g.finished():
		return fmt.Sprintf("gen %d  done", g.generation)
	default:
		return fmt.Sprintf("gen %d", g.generation)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
