package scene

// Point is a position on the canvas in pixels.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Center returns the centre of the bounding box of pts.
func Center(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// Style holds the paint attributes shared by every shape. Nil colours are
// left unset.
type Style struct {
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
	Dash        []float64
	// Round sets round caps and joins.
	Round bool
	// Opacity applies when in (0,1).
	Opacity float64
}

// Fill returns a style that only fills.
func Fill(c Color) Style { return Style{Fill: &c} }

// Stroke returns a style that only strokes.
func Stroke(c Color, width float64) Style {
	return Style{Stroke: &c, StrokeWidth: width}
}

// Node is one item in the scene graph.
type Node interface {
	node()
}

type Rectangle struct {
	X, Y, W, H float64
	Radius     float64
	Style
}

type Circle struct {
	Center Point
	Radius float64
	Style
}

type Line struct {
	From, To Point
	Style
}

// Path is a polyline or polygon through Points. Smooth asks the runtime to
// fit curves through the points.
type Path struct {
	Points []Point
	Closed bool
	Smooth bool
	Style
}

// Justification aligns a text item around its point.
type Justification string

const (
	JustifyLeft   Justification = "left"
	JustifyCenter Justification = "center"
	JustifyRight  Justification = "right"
)

type Text struct {
	At       Point
	Content  string
	FontSize float64
	Font     string
	Justify  Justification
	Style
}

// Group collects children so they can be animated together.
type Group struct {
	Children []Node
	Style
}

func (g *Group) Add(n ...Node) {
	g.Children = append(g.Children, n...)
}

func (*Rectangle) node() {}
func (*Circle) node()    {}
func (*Line) node()      {}
func (*Path) node()      {}
func (*Text) node()      {}
func (*Group) node()     {}
