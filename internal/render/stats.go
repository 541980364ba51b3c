package render

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const (
	statsMargin    = 60.0
	statsGridLines = 5
	statsScribbleN = 6
	statsNoData    = "No numeric data."
	statsBarFill   = 0.6
)

// statsPalette fills bars by category position, cycling past its length.
var statsPalette = []scene.Color{
	scene.RGBA(0.62, 0.72, 0.88, 0.9),
	scene.RGBA(0.74, 0.7, 0.86, 0.9),
	scene.RGBA(0.6, 0.78, 0.84, 0.9),
	scene.RGBA(0.78, 0.74, 0.88, 0.9),
	scene.RGBA(0.66, 0.76, 0.92, 0.9),
}

// StatsBars draws categories as hand-drawn bars (visual standard E).
type StatsBars struct{}

func (StatsBars) Standard() schema.VisualStandard { return schema.StandardE }

type barLayout struct {
	left, right, top, bottom float64
	barW, max                float64
}

func newBarLayout(inner box, cats []schema.Category) barLayout {
	l := barLayout{
		left:   inner.Left() + 80,
		right:  inner.Right() - 40,
		top:    inner.Top() + 40,
		bottom: inner.Bottom() - 40,
	}
	l.barW = (l.right - l.left) / float64(max(1, len(cats)))
	for _, c := range cats {
		l.max = math.Max(l.max, c.Value)
	}
	if l.max <= 0 || math.IsNaN(l.max) || math.IsInf(l.max, 0) {
		l.max = 1
	}
	return l
}

func (l barLayout) xCenter(i int) float64 {
	return l.left + l.barW*(float64(i)+0.5)
}

// height is linear in value over the maximum; negatives draw flat.
func (l barLayout) height(v float64) float64 {
	return (l.bottom - l.top) * clamp01(v/l.max)
}

func (StatsBars) Build(dims schema.Dimensions) *scene.Program {
	p := scene.New(CanvasWidth, CanvasHeight)
	inner := canvas.Expand(-statsMargin)
	sheet{
		background:  scene.RGB(0.99, 0.97, 0.94),
		paper:       scene.RGBA(1, 1, 1, 0.98),
		edge:        scene.RGB(0.86, 0.84, 0.82),
		edgeWidth:   1.5,
		inset:       10,
		title:       "Hand-Drawn Stats",
		titleColor:  scene.RGB(0.26, 0.28, 0.33),
		titleOffset: 24,
	}.draw(p, inner)

	stats, ok := dims.(schema.Stats)
	if !ok || len(stats.Categories) == 0 {
		placeholder(p, inner, statsNoData, scene.RGB(0.4, 0.4, 0.4))
		return p
	}
	j := newJitter(schema.StandardE, stats)
	l := newBarLayout(inner, stats.Categories)
	ink := scene.RGB(0.3, 0.32, 0.38)

	for g := 0; g <= statsGridLines; g++ {
		frac := float64(g) / statsGridLines
		y := l.bottom - (l.bottom-l.top)*frac
		gy := y + j.offset(GridJitter)
		p.Add(
			&scene.Line{From: scene.Pt(l.left-20, gy), To: scene.Pt(l.right+10, gy),
				Style: scene.Stroke(scene.RGB(0.9, 0.9, 0.9), 0.8)},
			text(scene.Pt(l.left-26, y+3), fmt.Sprintf("%.1f", l.max*frac), 8, ink.WithAlpha(0.7), scene.JustifyRight),
		)
	}

	for i, c := range stats.Categories {
		h := l.height(c.Value)
		w := l.barW * statsBarFill
		x0 := l.xCenter(i) - w/2
		top := l.bottom - h

		fill := statsPalette[i%len(statsPalette)]
		p.Add(&scene.Rectangle{X: x0, Y: top, W: w, H: h, Style: filled(fill, scene.RGBA(0.32, 0.36, 0.46, 0.8), 1.2)})

		pts := make([]scene.Point, statsScribbleN)
		for k := range pts {
			pts[k] = scene.Pt(x0+w*float64(k)/float64(statsScribbleN-1), top+j.offset(ScribbleJitter))
		}
		scribble := &scene.Path{Points: pts,
			Style: scene.Style{Stroke: colorPtr(scene.RGBA(0.26, 0.3, 0.38, 0.7)), StrokeWidth: 0.8, Round: true}}
		p.Add(scribble)
		p.Animate(&scene.Wave{Path: scribble, Amp: 1.2, Freq: 1, Step: 0.9, Phase: float64(i)})

		name := c.Name
		if name == "" {
			name = fmt.Sprintf("C%d", i+1)
		}
		p.Add(text(scene.Pt(l.xCenter(i), l.bottom+20), fmt.Sprintf("%s (%.1f)", name, c.Value), 9, ink, scene.JustifyCenter))
	}
	return p
}
