package render

import (
	"math"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const (
	dreamMargin    = 60.0
	dreamStarCount = 90
	dreamNoData    = "No dream symbols detected."
	ringStep       = 18.0
)

var (
	dreamInk      = scene.RGB(0.95, 0.94, 0.98)
	dreamFallback = scene.RGB(0.545, 0.361, 0.965)
	guideGold     = scene.RGB(1, 0.93, 0.66)
)

// DreamPlanets draws each scene as a planet on a ring around a centre
// (visual standard C).
type DreamPlanets struct{}

func (DreamPlanets) Standard() schema.VisualStandard { return schema.StandardC }

func (DreamPlanets) Build(dims schema.Dimensions) *scene.Program {
	p := scene.New(CanvasWidth, CanvasHeight)
	inner := canvas.Expand(-dreamMargin)
	sheet{
		background:  scene.RGB(0.05, 0.07, 0.12),
		paper:       scene.RGBA(0.16, 0.14, 0.24, 0.96),
		edge:        scene.RGBA(0.5, 0.45, 0.7, 0.4),
		edgeWidth:   1.2,
		inset:       10,
		title:       "Dream Map - Planets of the Night",
		titleColor:  scene.RGB(0.92, 0.9, 0.98),
		titleOffset: 20,
	}.draw(p, inner)

	dream, ok := dims.(schema.Dream)
	if !ok || len(dream.Scenes) == 0 {
		placeholder(p, inner, dreamNoData, scene.RGB(0.86, 0.84, 0.92))
		return p
	}
	j := newJitter(schema.StandardC, dream)
	center := inner.Center()

	stars := &scene.Group{}
	for s := 0; s < dreamStarCount; s++ {
		at := scene.Pt(inner.Left()+j.unit()*inner.W, inner.Top()+j.unit()*inner.H)
		stars.Add(&scene.Circle{Center: at, Radius: 0.3 + j.unit()*1.4,
			Style: scene.Fill(scene.RGBA(0.98, 0.96, 0.9, 0.2+j.unit()*0.8))})
	}
	p.Add(stars)
	p.Animate(&scene.Spin{Node: stars, Pivot: center, DegPerSec: 0.6})

	p.Add(&scene.Circle{Center: center, Radius: 4, Style: scene.Fill(dreamInk.WithAlpha(0.6))})

	base := math.Min(inner.W, inner.H) * 0.12
	for i, sc := range dream.Scenes {
		at, ring := planetPosition(center, base, i, len(dream.Scenes), sc.Intensity)
		r := planetRadius(sc.Intensity)

		p.Add(&scene.Circle{Center: center, Radius: ring,
			Style: scene.Style{Stroke: colorPtr(scene.RGBA(0.5, 0.48, 0.78, 0.2)), StrokeWidth: 1, Dash: []float64{4, 8}}})
		if sc.HasGuide {
			p.Add(&scene.Line{From: center, To: at,
				Style: scene.Style{Stroke: colorPtr(guideGold.WithAlpha(0.35)), StrokeWidth: 0.8, Dash: []float64{2, 6}}})
		}

		c, err := scene.ParseHex(sc.ColorHex)
		if err != nil {
			c = dreamFallback
		}

		planet := &scene.Group{}
		for k := 1; k <= clampInt(sc.Orbit, 1, 4); k++ {
			planet.Add(&scene.Circle{Center: at, Radius: r + 5*float64(k),
				Style: scene.Stroke(c.WithAlpha(0.25), 0.8)})
		}
		planet.Add(&scene.Circle{Center: at, Radius: r, Style: filled(c.WithAlpha(0.9), scene.RGBA(0.95, 0.9, 0.99, 0.8), 1.2)})
		if sc.HasGuide {
			planet.Add(&scene.Path{Points: star(scene.Pt(at.X+r+8, at.Y-r-8), 5), Closed: true,
				Style: filled(guideGold, guideGold.Mix(scene.RGB(0, 0, 0), 0.3), 0.6)})
		}
		planet.Add(text(scene.Pt(at.X, at.Y+r+14+5*float64(clampInt(sc.Orbit, 1, 4))), sc.Label, 9, dreamInk, scene.JustifyCenter))
		p.Add(planet)
		p.Animate(&scene.Drift{Node: planet, AmpX: 6, AmpY: 5, FreqX: 0.4, FreqY: 0.3, Phase: float64(i)})
	}

	dreamLegend(p, scene.Pt(inner.Left()+16, inner.Bottom()-52))
	return p
}

// planetPosition spaces scenes evenly by angle; the ring radius grows with
// intensity.
func planetPosition(center scene.Point, base float64, i, n int, intensity int) (scene.Point, float64) {
	angle := 2 * math.Pi * float64(i) / float64(n)
	ring := base + float64(clampInt(intensity, 1, 10))*ringStep
	return scene.Pt(center.X+math.Cos(angle)*ring, center.Y+math.Sin(angle)*ring), ring
}

func planetRadius(intensity int) float64 {
	return 10 + float64(clampInt(intensity, 1, 10))*2.5
}

// star returns a five-pointed star of outer radius r around c.
func star(c scene.Point, r float64) []scene.Point {
	pts := make([]scene.Point, 10)
	for i := range pts {
		rr := r
		if i%2 == 1 {
			rr = r * 0.45
		}
		ang := -math.Pi/2 + math.Pi*float64(i)/5
		pts[i] = scene.Pt(c.X+math.Cos(ang)*rr, c.Y+math.Sin(ang)*rr)
	}
	return pts
}

func dreamLegend(p *scene.Program, o scene.Point) {
	at := func(dx, dy float64) scene.Point { return scene.Pt(o.X+dx, o.Y+dy) }
	ink := dreamInk.WithAlpha(0.8)
	p.Add(
		text(o, "Legend", 10, dreamInk, scene.JustifyLeft),
		&scene.Circle{Center: at(8, 14), Radius: 5, Style: scene.Fill(dreamFallback)},
		text(at(20, 17), "Planet colour = emotion, distance = intensity", 8, ink, scene.JustifyLeft),
		&scene.Circle{Center: at(8, 28), Radius: 5, Style: scene.Stroke(ink, 0.8)},
		text(at(20, 31), "Rings = orbit", 8, ink, scene.JustifyLeft),
		&scene.Path{Points: star(at(8, 42), 5), Closed: true, Style: scene.Fill(guideGold)},
		text(at(20, 45), "Star = someone guiding", 8, ink, scene.JustifyLeft),
	)
}
