package render

import (
	"encoding/json"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

// Logical canvas size. Every program sets the view to this size.
const (
	CanvasWidth  = 960.0
	CanvasHeight = 640.0
)

// Jitter bounds in pixels, per axis.
const (
	GridJitter     = 1.5
	StrokeJitter   = 4.5
	CloudJitter    = 6.0
	ScribbleJitter = 3.0
)

type box struct {
	X, Y, W, H float64
}

var canvas = box{W: CanvasWidth, H: CanvasHeight}

func (b box) Left() float64   { return b.X }
func (b box) Right() float64  { return b.X + b.W }
func (b box) Top() float64    { return b.Y }
func (b box) Bottom() float64 { return b.Y + b.H }

func (b box) Center() scene.Point {
	return scene.Pt(b.X+b.W/2, b.Y+b.H/2)
}

// Expand grows b by d on every side; negative d shrinks it.
func (b box) Expand(d float64) box {
	return box{X: b.X - d, Y: b.Y - d, W: b.W + 2*d, H: b.H + 2*d}
}

func (b box) rect(style scene.Style) *scene.Rectangle {
	return &scene.Rectangle{X: b.X, Y: b.Y, W: b.W, H: b.H, Style: style}
}

// jitter is a PRNG seeded from the payload being drawn, so the same payload
// always produces the same hand-drawn wobble.
type jitter struct {
	rng *rand.Rand
}

func newJitter(vs schema.VisualStandard, dims schema.Dimensions) *jitter {
	h := fnv.New64a()
	h.Write([]byte(vs))
	if dims != nil {
		if b, err := json.Marshal(dims); err == nil {
			h.Write(b)
		}
	}
	seed := h.Sum64()
	return &jitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// unit returns a value in [0,1).
func (j *jitter) unit() float64 {
	return j.rng.Float64()
}

// offset returns a value in [-bound,bound).
func (j *jitter) offset(bound float64) float64 {
	return (j.rng.Float64()*2 - 1) * bound
}

func (j *jitter) point(p scene.Point, bound float64) scene.Point {
	return scene.Pt(p.X+j.offset(bound), p.Y+j.offset(bound))
}

func colorPtr(c scene.Color) *scene.Color { return &c }

func filled(fill, stroke scene.Color, width float64) scene.Style {
	return scene.Style{Fill: &fill, Stroke: &stroke, StrokeWidth: width}
}

func text(at scene.Point, content string, size float64, c scene.Color, j scene.Justification) *scene.Text {
	return &scene.Text{At: at, Content: content, FontSize: size, Justify: j, Style: scene.Fill(c)}
}

// sheet paints the page background, the inset sheet and the title.
type sheet struct {
	background  scene.Color
	paper       scene.Color
	edge        scene.Color
	edgeWidth   float64
	inset       float64
	title       string
	titleColor  scene.Color
	titleOffset float64
}

func (s sheet) draw(p *scene.Program, inner box) {
	p.Add(
		canvas.rect(scene.Fill(s.background)),
		inner.Expand(s.inset).rect(filled(s.paper, s.edge, s.edgeWidth)),
		text(scene.Pt(inner.Left(), inner.Top()-s.titleOffset), s.title, 18, s.titleColor, scene.JustifyLeft),
	)
}

// placeholder draws the static "no data" message. Programs with a
// placeholder carry no animation.
func placeholder(p *scene.Program, inner box, msg string, c scene.Color) {
	p.Add(text(inner.Center(), msg, 14, c, scene.JustifyCenter))
}

// cloud returns a closed scribble of n points around c with radius r. Each
// point's radius varies by at most CloudJitter.
func cloud(j *jitter, c scene.Point, r float64, n int) []scene.Point {
	pts := make([]scene.Point, n)
	for i := range pts {
		ang := 2 * math.Pi * float64(i) / float64(n)
		rr := r + j.offset(CloudJitter)
		pts[i] = scene.Pt(c.X+math.Cos(ang)*rr, c.Y+math.Sin(ang)*rr)
	}
	return pts
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
