package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/box-breathing/internal/breath"
)

const (
	haloMaxRadius = 14
	glowMaxWidth  = 6
)

var (
	handleActiveColor = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	glowColor         = color.RGBA{R: 120, G: 170, B: 255, A: 255}
)

func (g *Game) drawScene(screen *ebiten.Image, s breath.Scene) {
	b := s.Bounds

	// Fill container
	if s.Fill.Height > 0 {
		vector.DrawFilledRect(screen, float32(s.Fill.X), float32(s.Fill.Y), float32(s.Fill.Width), float32(s.Fill.Height), s.FillColor, false)
	}

	// Halo around the dot while a cue is sounding
	if g.meter != nil {
		if level := g.meter.Level(); level > 0.01 {
			r := s.Dot.Radius + level*haloMaxRadius
			vector.DrawFilledCircle(screen, float32(s.Dot.CenterX), float32(s.Dot.CenterY), float32(r), withAlpha(glowColor, 0.6*level), true)
		}
	}

	// Animated dot
	vector.DrawFilledCircle(screen, float32(s.Dot.CenterX), float32(s.Dot.CenterY), float32(s.Dot.Radius), breath.DotColor, true)

	// Border, drawn inside the bounds
	inset := breath.BorderWidth / 2
	vector.StrokeRect(screen, float32(b.X+inset), float32(b.Y+inset), float32(b.Width-breath.BorderWidth), float32(b.Height-breath.BorderWidth), breath.BorderWidth, breath.BorderColor, false)

	// Glow after a phase change
	if v := g.glow.value; v > 0 {
		w := float32(v) * glowMaxWidth
		vector.StrokeRect(screen, float32(b.X)-w/2, float32(b.Y)-w/2, float32(b.Width)+w, float32(b.Height)+w, w, withAlpha(glowColor, float64(v)), true)
	}

	// Corner handle
	h := s.Handle
	fill := breath.HandleColor
	if s.HandleActive {
		fill = handleActiveColor
	}
	vector.DrawFilledCircle(screen, float32(h.CenterX), float32(h.CenterY), float32(h.Radius), fill, true)
	vector.StrokeCircle(screen, float32(h.CenterX), float32(h.CenterY), float32(h.Radius), breath.BorderWidth, breath.BorderColor, true)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// status is the two-line HUD: phase and timing, then key help and the last error.
func (g *Game) status() string {
	var sb strings.Builder
	if g.hasScene {
		fmt.Fprintf(&sb, "%-6s  %s  cycle %.1fs\n",
			g.scene.Phase,
			breath.FormatDuration(secondsToDuration(g.scene.Elapsed)),
			g.scene.CycleDuration)
	}
	help := make([]string, 0, len(g.bindings)+1)
	for _, b := range g.bindings {
		help = append(help, b.label)
	}
	help = append(help, "Esc/Q: quit")
	sb.WriteString(strings.Join(help, "  "))
	if g.lastErr != nil {
		sb.WriteString(" | Error: " + g.lastErr.Error())
	}
	return sb.String()
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
