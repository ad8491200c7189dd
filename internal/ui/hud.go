//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"cave-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 10
	lineHeight   = 16
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor      = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	statusColor     = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the parameter panel to the right of the map view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     string
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: buildTitle(sim)}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot and status line.
func (h *HUD) Update(status string) {
	if h == nil {
		return
	}
	h.status = status
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	y += lineHeight

	for _, group := range h.snapshot.Groups {
		y += lineHeight / 2
		text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
		y += lineHeight
		for _, param := range group.Params {
			text.Draw(h.panel, fmt.Sprintf("%-11s %s", param.Label, param.Value), face, panelPadding, y, labelColor)
			y += lineHeight
		}
	}
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, height-panelPadding, statusColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Map"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " map"
}
