package scene

import "math"

// Animator perturbs one node as a pure function of elapsed time t (seconds)
// and the node's static state. Nothing carries over between frames, so every
// animated node returns to its base whenever the offset is zero.
type Animator interface {
	Target() Node
	setup(w *writer, name string)
	frame(w *writer, name string)
}

// Drift moves a node around its base position on a Lissajous curve.
type Drift struct {
	Node         Node
	AmpX, AmpY   float64
	FreqX, FreqY float64
	Phase        float64
}

func (d *Drift) Target() Node { return d.Node }

// Offset is the displacement from the base position at time t.
func (d *Drift) Offset(t float64) Point {
	return Point{
		X: math.Cos(t*d.FreqX+d.Phase) * d.AmpX,
		Y: math.Sin(t*d.FreqY+d.Phase) * d.AmpY,
	}
}

func (d *Drift) setup(w *writer, name string) {
	w.line("var %sBase = %s.position.clone();", name, name)
}

func (d *Drift) frame(w *writer, name string) {
	w.line("\t%s.position = %sBase.add(new Point(Math.cos(t * %s + %s) * %s, Math.sin(t * %s + %s) * %s));",
		name, name,
		num(d.FreqX), num(d.Phase), num(d.AmpX),
		num(d.FreqY), num(d.Phase), num(d.AmpY))
}

// Spin rotates a node about Pivot at DegPerSec. The rotation is set
// absolutely each frame.
type Spin struct {
	Node      Node
	Pivot     Point
	DegPerSec float64
}

func (s *Spin) Target() Node { return s.Node }

// Angle is the rotation in degrees at time t, in [0,360).
func (s *Spin) Angle(t float64) float64 {
	a := math.Mod(t*s.DegPerSec, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func (s *Spin) setup(w *writer, name string) {
	w.line("%s.applyMatrix = false;", name)
	w.line("%s.pivot = new Point(%s, %s);", name, num(s.Pivot.X), num(s.Pivot.Y))
}

func (s *Spin) frame(w *writer, name string) {
	w.line("\t%s.rotation = (t * %s) %% 360;", name, num(s.DegPerSec))
}

// Wave moves each point of a path vertically around its base position. The
// phase advances by Step per segment.
type Wave struct {
	Path  *Path
	Amp   float64
	Freq  float64
	Step  float64
	Phase float64
}

func (v *Wave) Target() Node { return v.Path }

// Offset is the vertical displacement of segment i at time t.
func (v *Wave) Offset(i int, t float64) float64 {
	return math.Sin(t*v.Freq+float64(i)*v.Step+v.Phase) * v.Amp
}

// PointAt is the animated position of segment i at time t.
func (v *Wave) PointAt(i int, t float64) Point {
	p := v.Path.Points[i]
	return Point{X: p.X, Y: p.Y + v.Offset(i, t)}
}

func (v *Wave) setup(w *writer, name string) {
	w.line("var %sBase = %s;", name, pointArray(v.Path.Points))
}

func (v *Wave) frame(w *writer, name string) {
	w.line("\tfor (var i = 0; i < %s.segments.length; i++) {", name)
	w.line("\t\t%s.segments[i].point = new Point(%sBase[i][0], %sBase[i][1] + Math.sin(t * %s + i * %s + %s) * %s);",
		name, name, name, num(v.Freq), num(v.Step), num(v.Phase), num(v.Amp))
	w.line("\t}")
	if v.Path.Smooth {
		w.line("\t%s.smooth();", name)
	}
}
