package render

import (
	"math"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const (
	stressMargin     = 60.0
	stressScale      = 10.0
	cloudThreshold   = 3
	stressNoData     = "No stress data to draw (timeline empty)"
	stressCloudSpin  = 6.0
	stressCloudPoint = 14
)

var (
	stormInk   = scene.RGB(0.45, 0.2, 0.35)
	cloudFill  = scene.RGBA(0.85, 0.78, 0.86, 0.4)
	cloudEdge  = scene.RGBA(0.45, 0.32, 0.55, 0.8)
	inkStress  = scene.RGB(0.35, 0.35, 0.38)
	tenseColor = scene.RGB(0.62, 0.56, 0.66)

	emotionColors = map[string]scene.Color{
		"relieved": scene.RGB(0.47, 0.74, 0.60),
		"angry":    scene.RGB(0.86, 0.36, 0.32),
		"afraid":   scene.RGB(0.55, 0.42, 0.78),
		"anxious":  scene.RGB(0.90, 0.55, 0.30),
		"tense":    tenseColor,
	}
)

// StressStorm draws the stress timeline as a storm line with a scribbled
// cloud over every stressful point (visual standard B).
type StressStorm struct{}

func (StressStorm) Standard() schema.VisualStandard { return schema.StandardB }

func (StressStorm) Build(dims schema.Dimensions) *scene.Program {
	p := scene.New(CanvasWidth, CanvasHeight)
	inner := canvas.Expand(-stressMargin)
	sheet{
		background:  scene.RGB(0.98, 0.96, 0.95),
		paper:       scene.RGBA(1, 1, 1, 0.96),
		edge:        scene.RGB(0.85, 0.8, 0.78),
		edgeWidth:   1.5,
		inset:       20,
		title:       "Stress Storm Timeline",
		titleColor:  scene.RGB(0.2, 0.22, 0.3),
		titleOffset: 24,
	}.draw(p, inner)

	stress, ok := dims.(schema.Stress)
	if !ok || len(stress.Timeline) == 0 {
		placeholder(p, inner, stressNoData, scene.RGB(0.4, 0.4, 0.4))
		return p
	}
	j := newJitter(schema.StandardB, stress)

	leftX, rightX := inner.Left()+40, inner.Right()-40
	bottomY, topY := inner.Bottom()-60, inner.Top()+60
	pts := stressPoints(stress.Timeline, leftX, rightX, bottomY, topY)

	p.Add(&scene.Line{From: scene.Pt(leftX-20, bottomY), To: scene.Pt(rightX+20, bottomY),
		Style: scene.Stroke(scene.RGB(0.85, 0.8, 0.78), 1)})

	echo := make([]scene.Point, len(pts))
	for i, pt := range pts {
		echo[i] = j.point(pt, StrokeJitter)
	}
	p.Add(&scene.Path{Points: echo, Smooth: true,
		Style: scene.Style{Stroke: colorPtr(stormInk.WithAlpha(0.25)), StrokeWidth: 1, Round: true}})

	storm := &scene.Path{Points: pts, Smooth: true,
		Style: scene.Style{Stroke: colorPtr(stormInk), StrokeWidth: 2.5, Round: true}}
	p.Add(storm)
	p.Animate(&scene.Wave{Path: storm, Amp: 3, Freq: 0.8, Step: 0.7})

	for i, sp := range stress.Timeline {
		at := pts[i]
		if showCloud(sp.Stress) {
			c := &scene.Path{
				Points: cloud(j, at, cloudRadius(sp.Stress), stressCloudPoint),
				Closed: true,
				Style:  filled(cloudFill, cloudEdge, 1),
			}
			p.Add(c)
			p.Animate(&scene.Spin{Node: c, Pivot: at, DegPerSec: stressCloudSpin})
		}

		p.Add(&scene.Circle{Center: at, Radius: 4, Style: filled(emotionColor(sp.Emotion), stormInk, 0.8)})
		if sp.BodyNote != "" {
			p.Add(text(scene.Pt(at.X, at.Y+18), sp.BodyNote, 7, scene.RGBA(0.45, 0.32, 0.55, 0.9), scene.JustifyCenter))
		}
		if i%2 == 0 {
			p.Add(text(scene.Pt(at.X, bottomY+30), sp.Label, 8, inkStress, scene.JustifyCenter))
		}
	}

	stressLegend(p, scene.Pt(inner.Right()-170, inner.Top()+8))
	return p
}

// stressPoints maps position to x and stress/10 to height above bottomY.
func stressPoints(tl []schema.StressPoint, leftX, rightX, bottomY, topY float64) []scene.Point {
	pts := make([]scene.Point, len(tl))
	for i, sp := range tl {
		x := leftX + clamp01(sp.Position)*(rightX-leftX)
		y := bottomY - clamp01(float64(sp.Stress)/stressScale)*(bottomY-topY)
		pts[i] = scene.Pt(x, y)
	}
	return pts
}

// showCloud applies to the absolute stress value, not the normalised one.
func showCloud(stress int) bool { return stress >= cloudThreshold }

func cloudRadius(stress int) float64 {
	return 16 + float64(clampInt(stress, 0, 10))*3
}

func emotionColor(emotion string) scene.Color {
	if c, ok := emotionColors[emotion]; ok {
		return c
	}
	return tenseColor
}

func stressLegend(p *scene.Program, o scene.Point) {
	at := func(dx, dy float64) scene.Point { return scene.Pt(o.X+dx, o.Y+dy) }
	p.Add(
		text(o, "Legend", 10, scene.RGB(0.30, 0.32, 0.38), scene.JustifyLeft),
		&scene.Circle{Center: at(10, 16), Radius: 6, Style: filled(cloudFill, cloudEdge, 1)},
		text(at(26, 19), "Cloud = stress 3+ (size grows)", 8, inkStress, scene.JustifyLeft),
	)
	y := 32.0
	for _, name := range []string{"relieved", "tense", "anxious", "angry", "afraid"} {
		p.Add(
			&scene.Circle{Center: at(10, y), Radius: 3, Style: scene.Fill(emotionColors[name])},
			text(at(26, y+3), name, 8, inkStress, scene.JustifyLeft),
		)
		y += 12
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
