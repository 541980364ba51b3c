package render

import (
	"math"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const (
	weekMargin      = 52.0
	weekBundleCount = 14
	weekGridStep    = 24.0
	weekNoData      = "No week data to draw."
)

var (
	moodCold = scene.RGB(0.46, 0.68, 0.94)
	moodMid  = scene.RGB(0.96, 0.82, 0.50)
	moodWarm = scene.RGB(0.94, 0.48, 0.64)

	leafFill   = scene.RGB(0.60, 0.80, 0.52)
	leafStroke = scene.RGB(0.32, 0.52, 0.40)
	inkWeek    = scene.RGB(0.32, 0.34, 0.40)
)

// WeekWave draws the week as a wave of mood with a bubble per day
// (visual standard A).
type WeekWave struct{}

func (WeekWave) Standard() schema.VisualStandard { return schema.StandardA }

func (WeekWave) Build(dims schema.Dimensions) *scene.Program {
	p := scene.New(CanvasWidth, CanvasHeight)
	inner := canvas.Expand(-weekMargin)
	sheet{
		background:  scene.RGB(0.99, 0.97, 0.94),
		paper:       scene.RGBA(1.0, 0.995, 0.985, 0.96),
		edge:        scene.RGB(0.86, 0.84, 0.80),
		edgeWidth:   1.5,
		inset:       20,
		title:       "A Week in Feelings & Energy",
		titleColor:  scene.RGB(0.28, 0.30, 0.34),
		titleOffset: 22,
	}.draw(p, inner)

	week, ok := dims.(schema.Week)
	if !ok || len(week.Days) == 0 {
		placeholder(p, inner, weekNoData, scene.RGB(0.4, 0.4, 0.4))
		return p
	}
	j := newJitter(schema.StandardA, week)

	for gx := inner.Left(); gx <= inner.Right(); gx += weekGridStep {
		x := gx + j.offset(GridJitter)
		p.Add(&scene.Line{From: scene.Pt(x, inner.Top()), To: scene.Pt(x, inner.Bottom()),
			Style: scene.Stroke(scene.RGBA(0.94, 0.94, 0.92, 0.6), 0.5)})
	}
	for gy := inner.Top(); gy <= inner.Bottom(); gy += weekGridStep {
		y := gy + j.offset(GridJitter)
		p.Add(&scene.Line{From: scene.Pt(inner.Left(), y), To: scene.Pt(inner.Right(), y),
			Style: scene.Stroke(scene.RGBA(0.96, 0.96, 0.94, 0.6), 0.5)})
	}

	base := weekPoints(week.Days, inner)
	baseY := inner.Center().Y + inner.H*0.12

	bundle := &scene.Group{}
	var waves []scene.Animator
	for b := 0; b < weekBundleCount; b++ {
		pts := make([]scene.Point, len(base))
		for i, bp := range base {
			pts[i] = j.point(bp, StrokeJitter)
		}
		stroke := &scene.Path{Points: pts, Smooth: true,
			Style: scene.Style{Stroke: colorPtr(scene.RGBA(0.90, 0.46, 0.64, 0.16)), StrokeWidth: 6, Round: true}}
		bundle.Add(stroke)
		waves = append(waves, &scene.Wave{Path: stroke, Amp: 1.8, Freq: 0.5, Step: 0.2, Phase: float64(b) * 0.4})
	}
	p.Add(bundle)
	p.Animate(waves...)

	p.Add(
		&scene.Path{Points: base, Smooth: true,
			Style: scene.Style{Stroke: colorPtr(scene.RGBA(0.90, 0.42, 0.64, 0.9)), StrokeWidth: 3.2, Round: true}},
		&scene.Line{From: scene.Pt(inner.Left(), baseY), To: scene.Pt(inner.Right(), baseY),
			Style: scene.Stroke(scene.RGBA(0.88, 0.84, 0.80, 0.9), 1.1)},
	)

	labelY := inner.Bottom() - 42
	for i, d := range week.Days {
		drawDay(p, j, d, base[i])
		p.Add(
			text(scene.Pt(base[i].X, labelY+6), d.Name, 11, inkWeek, scene.JustifyCenter),
			text(scene.Pt(base[i].X, labelY+20), d.Label, 8, scene.RGBA(0.55, 0.55, 0.58, 0.85), scene.JustifyCenter),
		)
	}

	weekLegend(p, scene.Pt(inner.Right()-170, inner.Top()+24))
	return p
}

// weekPoints places day i at an even step across the sheet, at a height
// linear in mood.
func weekPoints(days []schema.DayFeature, inner box) []scene.Point {
	leftX, rightX := inner.Left()+40, inner.Right()-40
	step := 0.0
	if len(days) > 1 {
		step = (rightX - leftX) / float64(len(days)-1)
	}
	amp := inner.H * 0.22
	baseY := inner.Center().Y + inner.H*0.12

	pts := make([]scene.Point, len(days))
	for i, d := range days {
		pts[i] = scene.Pt(leftX+step*float64(i), baseY-moodT(d.Mood)*amp)
	}
	return pts
}

// moodT normalises mood from [1,5] to [0,1].
func moodT(mood int) float64 {
	return math.Min(1, math.Max(0, float64(mood-1)/4))
}

// moodColor runs cold to mid over the lower half of the mood range and mid
// to warm over the upper half.
func moodColor(mood int) scene.Color {
	t := moodT(mood)
	if t < 0.5 {
		return moodCold.Mix(moodMid, t/0.5)
	}
	return moodMid.Mix(moodWarm, (t-0.5)/0.5)
}

func bubbleRadius(energy int) float64 { return 10 + float64(energy)*2.6 }

// showLeaf reports whether a day earns the connection leaf.
func showLeaf(d schema.DayFeature) bool {
	return d.ConnectionScore >= 0.6 || d.Mood >= 4
}

func drawDay(p *scene.Program, j *jitter, d schema.DayFeature, at scene.Point) {
	c := moodColor(d.Mood)
	energy := clampInt(d.Energy, 1, 5)
	r := bubbleRadius(energy)

	p.Add(&scene.Path{
		Points: cloud(j, at, 18+float64(energy)*3, 22),
		Closed: true,
		Style:  filled(c.WithAlpha(0.16), scene.RGBA(0.65, 0.60, 0.66, 0.7), 0.7),
	})
	p.Add(&scene.Circle{Center: at, Radius: r, Style: filled(c, scene.RGBA(0.26, 0.28, 0.34, 0.85), 1.1)})

	ticks := 5 + energy*3
	for t := 0; t < ticks; t++ {
		ang := 2 * math.Pi * float64(t) / float64(ticks)
		from := scene.Pt(at.X+math.Cos(ang)*(r-1), at.Y+math.Sin(ang)*(r-1))
		to := scene.Pt(at.X+math.Cos(ang)*(r+4), at.Y+math.Sin(ang)*(r+4))
		p.Add(&scene.Line{From: j.point(from, 1), To: j.point(to, 1),
			Style: scene.Stroke(scene.RGBA(0.24, 0.25, 0.30, 0.7), 0.8)})
	}

	if showLeaf(d) {
		tip := scene.Pt(at.X, at.Y-r-12)
		p.Add(
			&scene.Line{From: scene.Pt(tip.X, tip.Y+6), To: tip, Style: scene.Stroke(scene.RGB(0.30, 0.50, 0.36), 1)},
			&scene.Path{
				Points: []scene.Point{tip, {X: tip.X - 6, Y: tip.Y - 5}, {X: tip.X, Y: tip.Y - 8}, {X: tip.X + 6, Y: tip.Y - 5}},
				Closed: true,
				Style:  filled(leafFill, leafStroke, 0.8),
			},
		)
	}

	dots := 4 + energy*3
	for k := 0; k < dots; k++ {
		ang := j.unit() * 2 * math.Pi
		dist := r + 10 + j.unit()*18
		p.Add(&scene.Circle{
			Center: scene.Pt(at.X+math.Cos(ang)*dist, at.Y+math.Sin(ang)*dist),
			Radius: 0.6 + j.unit()*1.8,
			Style:  scene.Fill(c.WithAlpha(0.55)),
		})
	}
}

func weekLegend(p *scene.Program, o scene.Point) {
	at := func(dx, dy float64) scene.Point { return scene.Pt(o.X+dx, o.Y+dy) }
	p.Add(
		text(o, "Legend", 10, scene.RGB(0.30, 0.32, 0.38), scene.JustifyLeft),
		&scene.Circle{Center: at(10, 18), Radius: 5, Style: filled(moodColor(4), scene.RGB(0.26, 0.28, 0.34), 0.8)},
		text(at(26, 21), "Mood bubble (color & size)", 8, inkWeek, scene.JustifyLeft),
		&scene.Circle{Center: at(10, 34), Radius: 2, Style: scene.Fill(scene.RGB(0.70, 0.70, 0.75))},
		text(at(26, 37), "Activity dots (energy / km)", 8, inkWeek, scene.JustifyLeft),
		&scene.Path{Points: []scene.Point{at(6, 48), at(10, 42), at(14, 48)}, Closed: true,
			Style: filled(leafFill, leafStroke, 0.8)},
		text(at(26, 49), "Leaf = strong connection / good day", 8, inkWeek, scene.JustifyLeft),
	)
}
