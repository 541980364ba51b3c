package render

import (
	"fmt"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

const (
	attendanceMargin = 60.0
	attendanceNoData = "No attendance data."
)

var (
	presentFill = scene.RGBA(0.47, 0.74, 0.48, 0.75)
	absentFill  = scene.RGBA(0.98, 0.97, 0.95, 0.4)
	inkGrid     = scene.RGB(0.35, 0.36, 0.42)
)

// AttendanceGrid draws one row per person and one cell per session
// (visual standard D).
type AttendanceGrid struct{}

func (AttendanceGrid) Standard() schema.VisualStandard { return schema.StandardD }

// cellGrid is the exact cell layout; grid-line jitter never feeds into it.
type cellGrid struct {
	top, left, bottom, right float64
	rowH, colW               float64
}

func newCellGrid(inner box, rows, cols int) cellGrid {
	g := cellGrid{
		top:    inner.Top() + 40,
		left:   inner.Left() + 120,
		bottom: inner.Bottom() - 40,
		right:  inner.Right() - 40,
	}
	g.rowH = (g.bottom - g.top) / float64(rows)
	g.colW = (g.right - g.left) / float64(cols)
	return g
}

func (g cellGrid) center(row, col int) scene.Point {
	return scene.Pt(g.left+g.colW*float64(col)+g.colW/2, g.top+g.rowH*float64(row)+g.rowH/2)
}

func (g cellGrid) cell(row, col int) (x, y, w, h float64) {
	c := g.center(row, col)
	return c.X - g.colW*0.35, c.Y - g.rowH*0.35, g.colW * 0.7, g.rowH * 0.7
}

func (AttendanceGrid) Build(dims schema.Dimensions) *scene.Program {
	p := scene.New(CanvasWidth, CanvasHeight)
	inner := canvas.Expand(-attendanceMargin)
	sheet{
		background:  scene.RGB(0.99, 0.97, 0.94),
		paper:       scene.RGBA(1, 1, 1, 0.98),
		edge:        scene.RGB(0.86, 0.84, 0.82),
		edgeWidth:   1.5,
		inset:       10,
		title:       "Attendance Grid",
		titleColor:  scene.RGB(0.26, 0.28, 0.33),
		titleOffset: 24,
	}.draw(p, inner)

	att, ok := dims.(schema.Attendance)
	cols := min(att.MaxColumns(), schema.MaxAttendanceColumns)
	if !ok || len(att.Rows) == 0 || cols == 0 {
		placeholder(p, inner, attendanceNoData, scene.RGB(0.35, 0.36, 0.4))
		return p
	}
	j := newJitter(schema.StandardD, att)
	g := newCellGrid(inner, len(att.Rows), cols)

	gridLine := scene.Stroke(scene.RGB(0.9, 0.9, 0.9), 1)
	for r := 0; r <= len(att.Rows); r++ {
		y := g.top + g.rowH*float64(r) + j.offset(GridJitter)
		p.Add(&scene.Line{From: scene.Pt(g.left-10, y), To: scene.Pt(g.right+10, y), Style: gridLine})
	}
	for c := 0; c <= cols; c++ {
		x := g.left + g.colW*float64(c) + j.offset(GridJitter)
		p.Add(&scene.Line{From: scene.Pt(x, g.top-10), To: scene.Pt(x, g.bottom+10), Style: gridLine})
	}

	for i, row := range att.Rows {
		label := row.Label
		if label == "" {
			label = fmt.Sprintf("Row %d", i+1)
		}
		mid := g.center(i, 0).Y
		p.Add(text(scene.Pt(inner.Left()+20, mid+4), label, 10, inkGrid, scene.JustifyLeft))

		present := 0
		for c := 0; c < cols; c++ {
			val := 0
			if c < len(row.Values) {
				val = row.Values[c]
			}
			at := g.center(i, c)
			x, y, w, h := g.cell(i, c)
			stroke := scene.RGBA(0.8, 0.8, 0.8, 0.9)

			if val == 1 {
				present++
				p.Add(&scene.Rectangle{X: x, Y: y, W: w, H: h, Style: filled(presentFill, stroke, 0.8)})
				check := &scene.Path{
					Points: []scene.Point{
						{X: at.X - g.colW*0.15, Y: at.Y},
						{X: at.X - g.colW*0.04, Y: at.Y + g.rowH*0.12},
						{X: at.X + g.colW*0.16, Y: at.Y - g.rowH*0.16},
					},
					Style: scene.Style{Stroke: colorPtr(scene.RGB(0.15, 0.35, 0.18)), StrokeWidth: 1.3, Round: true},
				}
				p.Add(check)
				p.Animate(&scene.Drift{Node: check, AmpX: 0.8, AmpY: 0.8, FreqX: 1.1, FreqY: 0.9,
					Phase: float64(i*cols+c) * 0.37})
			} else {
				p.Add(
					&scene.Rectangle{X: x, Y: y, W: w, H: h, Style: filled(absentFill, stroke, 0.8)},
					&scene.Circle{Center: at, Radius: 2, Style: scene.Fill(scene.RGBA(0.8, 0.78, 0.75, 0.7))},
				)
			}
		}
		p.Add(text(scene.Pt(g.right+20, mid+4), fmt.Sprintf("%d/%d", present, cols), 9, inkGrid, scene.JustifyLeft))
	}
	return p
}
