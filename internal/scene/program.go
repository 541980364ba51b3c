// Package scene builds drawing programs for the Paper.js scene-graph
// runtime. Renderers assemble a tree of nodes and animators; Program.String
// serializes it to PaperScript. Every string is emitted as a JSON literal and
// every number in fixed precision, so no caller value is spliced into code.
package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Program is a scene graph plus its per-frame animators.
type Program struct {
	Width, Height float64

	nodes []Node
	anims []Animator
}

func New(width, height float64) *Program {
	return &Program{Width: width, Height: height}
}

// Add appends top-level nodes in paint order.
func (p *Program) Add(n ...Node) {
	p.nodes = append(p.nodes, n...)
}

// Animate registers animators. Animators whose target is never added are
// dropped at serialization.
func (p *Program) Animate(a ...Animator) {
	p.anims = append(p.anims, a...)
}

func (p *Program) Nodes() []Node { return p.nodes }

func (p *Program) Animators() []Animator { return p.anims }

// Walk visits every node depth-first, groups before their children.
func (p *Program) Walk(fn func(Node)) {
	var visit func(n Node)
	visit = func(n Node) {
		fn(n)
		if g, ok := n.(*Group); ok {
			for _, c := range g.Children {
				visit(c)
			}
		}
	}
	for _, n := range p.nodes {
		visit(n)
	}
}

// String serializes the program. Output is a pure function of the tree.
func (p *Program) String() string {
	e := &emitter{names: make(map[Node]string)}
	e.w.line("view.viewSize = new Size(%s, %s);", num(p.Width), num(p.Height))
	for _, n := range p.nodes {
		e.emit(n)
	}

	type bound struct {
		a    Animator
		name string
	}
	var live []bound
	for _, a := range p.anims {
		if name, ok := e.names[a.Target()]; ok {
			live = append(live, bound{a, name})
		}
	}
	if len(live) == 0 {
		return e.w.String()
	}

	for _, b := range live {
		b.a.setup(&e.w, b.name)
	}
	e.w.line("function onFrame(event) {")
	e.w.line("\tvar t = event.time;")
	for _, b := range live {
		b.a.frame(&e.w, b.name)
	}
	e.w.line("}")
	return e.w.String()
}

type writer struct {
	b strings.Builder
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) String() string { return w.b.String() }

type emitter struct {
	w     writer
	names map[Node]string
	next  int
}

// emit writes n (children first for groups) and returns its variable name.
// A node reached twice is emitted once.
func (e *emitter) emit(n Node) string {
	if name, ok := e.names[n]; ok {
		return name
	}

	var expr string
	switch n := n.(type) {
	case *Group:
		children := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, e.emit(c))
		}
		expr = "new Group(" + object(append([]string{
			"children: [" + strings.Join(children, ", ") + "]",
		}, styleProps(n.Style)...)) + ")"
	case *Rectangle:
		props := []string{
			"point: " + pointLit(Pt(n.X, n.Y)),
			"size: [" + num(n.W) + ", " + num(n.H) + "]",
		}
		if n.Radius > 0 {
			props = append(props, "radius: "+num(n.Radius))
		}
		expr = "new Path.Rectangle(" + object(append(props, styleProps(n.Style)...)) + ")"
	case *Circle:
		expr = "new Path.Circle(" + object(append([]string{
			"center: " + pointLit(n.Center),
			"radius: " + num(n.Radius),
		}, styleProps(n.Style)...)) + ")"
	case *Line:
		expr = "new Path.Line(" + object(append([]string{
			"from: " + pointLit(n.From),
			"to: " + pointLit(n.To),
		}, styleProps(n.Style)...)) + ")"
	case *Path:
		props := []string{"segments: " + pointArray(n.Points)}
		if n.Closed {
			props = append(props, "closed: true")
		}
		expr = "new Path(" + object(append(props, styleProps(n.Style)...)) + ")"
	case *Text:
		props := []string{
			"point: " + pointLit(n.At),
			"content: " + quote(n.Content),
		}
		if n.FontSize > 0 {
			props = append(props, "fontSize: "+num(n.FontSize))
		}
		if n.Font != "" {
			props = append(props, "fontFamily: "+quote(n.Font))
		}
		if n.Justify != "" {
			props = append(props, "justification: "+quote(string(n.Justify)))
		}
		expr = "new PointText(" + object(append(props, styleProps(n.Style)...)) + ")"
	default:
		return ""
	}

	name := "n" + strconv.Itoa(e.next)
	e.next++
	e.names[n] = name
	e.w.line("var %s = %s;", name, expr)
	if p, ok := n.(*Path); ok && p.Smooth {
		e.w.line("%s.smooth();", name)
	}
	return name
}

func styleProps(s Style) []string {
	var props []string
	if s.Fill != nil {
		props = append(props, "fillColor: "+colorLit(*s.Fill))
	}
	if s.Stroke != nil {
		props = append(props, "strokeColor: "+colorLit(*s.Stroke))
	}
	if s.StrokeWidth > 0 {
		props = append(props, "strokeWidth: "+num(s.StrokeWidth))
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		props = append(props, "dashArray: ["+strings.Join(parts, ", ")+"]")
	}
	if s.Round {
		props = append(props, `strokeCap: "round"`, `strokeJoin: "round"`)
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		props = append(props, "opacity: "+num(s.Opacity))
	}
	return props
}

func object(props []string) string {
	return "{" + strings.Join(props, ", ") + "}"
}

func pointLit(p Point) string {
	return "[" + num(p.X) + ", " + num(p.Y) + "]"
}

func pointArray(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = pointLit(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func colorLit(c Color) string {
	return "new Color(" + fixed(clamp01(c.R), 3) + ", " + fixed(clamp01(c.G), 3) + ", " +
		fixed(clamp01(c.B), 3) + ", " + fixed(clamp01(c.A), 3) + ")"
}

// quote renders s as a JSON string literal, which is also a valid JS literal.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func num(v float64) string { return fixed(v, 2) }

// fixed rounds v to digits decimals. Non-finite values become 0.
func fixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	scale := math.Pow(10, float64(digits))
	v = math.Round(v*scale) / scale
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
