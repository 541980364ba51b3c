package render

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

func sampleWeek() schema.Week {
	days := make([]schema.DayFeature, 7)
	for i, name := range schema.DayNames {
		days[i] = schema.DayFeature{Name: name, Mood: i%5 + 1, Energy: (i+2)%5 + 1, ConnectionScore: float64(i) / 7, Label: "day " + name}
	}
	return schema.Week{Days: days}
}

func sampleStress() schema.Stress {
	return schema.Stress{Timeline: []schema.StressPoint{
		{Label: "woke up", Position: 0, Stress: 2, Emotion: "tense"},
		{Label: "exam", Position: 0.5, Stress: 7, Emotion: "anxious", BodyNote: "headache"},
		{Label: "walk", Position: 1, Stress: 3, Emotion: "relieved"},
	}}
}

func sampleDream() schema.Dream {
	return schema.Dream{Scenes: []schema.DreamScene{
		{ID: 1, Label: "dark forest", Emotion: "afraid", Intensity: 8, ColorHex: "#e04848", Orbit: 1},
		{ID: 2, Label: "a friend", Emotion: "peaceful", Intensity: 3, ColorHex: "#5b8def", Orbit: 2, HasGuide: true},
		{ID: 3, Label: "bad colour", Emotion: "curious", Intensity: 5, ColorHex: "nope", Orbit: 3},
	}}
}

func sampleAttendance() schema.Attendance {
	return schema.Attendance{Rows: []schema.AttendanceRow{
		{Label: "Alice", Values: []int{1, 0, 1}},
		{Label: "", Values: []int{0, 1}},
	}}
}

func sampleStats() schema.Stats {
	return schema.Stats{Categories: []schema.Category{{Name: "A", Value: 1}, {Name: "B", Value: 4}, {Name: "C", Value: 2}}}
}

func allRenderers() []Renderer {
	return []Renderer{WeekWave{}, StressStorm{}, DreamPlanets{}, AttendanceGrid{}, StatsBars{}}
}

func TestRenderers_Totality(t *testing.T) {
	payloads := []schema.Dimensions{
		nil,
		schema.Week{}, schema.Stress{}, schema.Dream{}, schema.Attendance{}, schema.Stats{},
		sampleWeek(), sampleStress(), sampleDream(), sampleAttendance(), sampleStats(),
		schema.Attendance{Rows: []schema.AttendanceRow{{Label: "x"}}},
	}
	for _, r := range allRenderers() {
		for _, dims := range payloads {
			out := r.Build(dims).String()
			require.NotEmpty(t, out)
			assert.True(t, strings.HasPrefix(out, "view.viewSize = new Size(960, 640);\n"), "%s", r.Standard())
		}
	}
}

func TestRenderers_PlaceholderWhenEmpty(t *testing.T) {
	cases := []struct {
		r     Renderer
		empty schema.Dimensions
		full  schema.Dimensions
		msg   string
	}{
		{WeekWave{}, schema.Week{}, sampleWeek(), weekNoData},
		{StressStorm{}, schema.Stress{}, sampleStress(), stressNoData},
		{DreamPlanets{}, schema.Dream{}, sampleDream(), dreamNoData},
		{AttendanceGrid{}, schema.Attendance{}, sampleAttendance(), attendanceNoData},
		{StatsBars{}, schema.Stats{}, sampleStats(), statsNoData},
	}
	for _, tc := range cases {
		t.Run(string(tc.r.Standard()), func(t *testing.T) {
			empty := tc.r.Build(tc.empty).String()
			assert.Contains(t, empty, tc.msg)
			assert.NotContains(t, empty, "onFrame")

			full := tc.r.Build(tc.full).String()
			assert.NotContains(t, full, tc.msg)
			assert.Contains(t, full, "function onFrame(event) {")
		})
	}
}

func TestDispatch(t *testing.T) {
	for _, m := range schema.Modes {
		r := Dispatch(schema.Schema{Mode: m})
		assert.Equal(t, m.VisualStandard(), r.Standard())
	}

	r := Dispatch(schema.Schema{Mode: "", VisualStandard: "c", Dimensions: sampleDream()})
	assert.Equal(t, schema.StandardC, r.Standard(), "falls back to the visual standard")

	r = Dispatch(schema.Schema{Mode: "poster", VisualStandard: "Z"})
	assert.Equal(t, schema.StandardA, r.Standard())

	r = Dispatch(schema.Assemble(schema.ModeStress, schema.InputStory, sampleStress(), ""))
	assert.Equal(t, schema.StandardB, r.Standard())
}

func TestDispatch_CorruptedSchemaFallsBackToWeek(t *testing.T) {
	var s schema.Schema
	doc := `{"mode":"attendance","visualStandard":"D","dimensions":{"categories":[{"name":"x","value":3}]}}`
	require.NoError(t, json.Unmarshal([]byte(doc), &s))

	r := Dispatch(s)
	assert.Equal(t, schema.StandardA, r.Standard())

	var out string
	require.NotPanics(t, func() { out = Render(s) })
	assert.Contains(t, out, weekNoData)
	assert.NotContains(t, out, "onFrame")
}

func TestRender_Deterministic(t *testing.T) {
	s := schema.Assemble(schema.ModeWeek, schema.InputStory, sampleWeek(), "notes")
	assert.Equal(t, Render(s), Render(s))

	other := sampleWeek()
	other.Days[0].Mood = 5
	assert.NotEqual(t, Render(s), Render(schema.Assemble(schema.ModeWeek, schema.InputStory, other, "notes")))
}

func TestJitter_Bounds(t *testing.T) {
	j := newJitter(schema.StandardA, sampleWeek())
	for _, bound := range []float64{GridJitter, StrokeJitter, CloudJitter, ScribbleJitter} {
		for i := 0; i < 2000; i++ {
			v := j.offset(bound)
			require.LessOrEqual(t, math.Abs(v), bound)
		}
	}

	center := scene.Pt(100, 100)
	for _, p := range cloud(j, center, 30, 22) {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		assert.InDelta(t, 30, d, CloudJitter+1e-9)
	}
}

func TestWeek_Geometry(t *testing.T) {
	inner := canvas.Expand(-weekMargin)
	week := sampleWeek()
	pts := weekPoints(week.Days, inner)
	require.Len(t, pts, 7)

	step := pts[1].X - pts[0].X
	for i := 1; i < len(pts); i++ {
		assert.InDelta(t, step, pts[i].X-pts[i-1].X, 1e-9, "x is linear in day index")
	}

	baseY := inner.Center().Y + inner.H*0.12
	amp := inner.H * 0.22
	for i, d := range week.Days {
		assert.InDelta(t, baseY-float64(d.Mood-1)/4*amp, pts[i].Y, 1e-9)
	}

	assert.Equal(t, moodCold, moodColor(1))
	assert.Equal(t, moodMid, moodColor(3))
	warm := moodColor(5)
	assert.InDelta(t, moodWarm.R, warm.R, 1e-9)
	assert.InDelta(t, moodWarm.G, warm.G, 1e-9)
	assert.InDelta(t, moodWarm.B, warm.B, 1e-9)
	assert.Equal(t, moodCold.Mix(moodMid, 0.5), moodColor(2))
	assert.Less(t, bubbleRadius(1), bubbleRadius(5))
}

func TestWeek_Leaf(t *testing.T) {
	tests := []struct {
		mood int
		conn float64
		want bool
	}{
		{3, 0.59, false},
		{3, 0.6, true},
		{4, 0.0, true},
		{5, 0.3, true},
		{1, 1.0, true},
		{2, 0.3, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, showLeaf(schema.DayFeature{Mood: tt.mood, ConnectionScore: tt.conn}), "mood=%d conn=%v", tt.mood, tt.conn)
	}

	week := sampleWeek()
	want := 0
	for _, d := range week.Days {
		if showLeaf(d) {
			want++
		}
	}
	leaves := 0
	WeekWave{}.Build(week).Walk(func(n scene.Node) {
		if p, ok := n.(*scene.Path); ok && p.Fill != nil && *p.Fill == leafFill {
			leaves++
		}
	})
	assert.Equal(t, want+1, leaves, "one leaf per qualifying day plus the legend")
}

func TestStress_Geometry(t *testing.T) {
	pts := stressPoints([]schema.StressPoint{
		{Position: 0, Stress: 10},
		{Position: 0.5, Stress: 5},
		{Position: 1, Stress: 1},
	}, 100, 300, 500, 100)

	assert.Equal(t, scene.Pt(100, 100), pts[0])
	assert.Equal(t, scene.Pt(200, 300), pts[1])
	assert.InDelta(t, 460, pts[2].Y, 1e-9)
	assert.Equal(t, 300.0, pts[2].X)

	assert.False(t, showCloud(2))
	assert.True(t, showCloud(3))
	assert.Less(t, cloudRadius(3), cloudRadius(9))

	clouds, spins := 0, 0
	prog := StressStorm{}.Build(sampleStress())
	prog.Walk(func(n scene.Node) {
		if p, ok := n.(*scene.Path); ok && p.Closed && p.Fill != nil && *p.Fill == cloudFill {
			clouds++
		}
	})
	for _, a := range prog.Animators() {
		if _, ok := a.(*scene.Spin); ok {
			spins++
		}
	}
	assert.Equal(t, 2, clouds, "stress 7 and 3 get clouds, stress 2 does not")
	assert.Equal(t, 2, spins)
	assert.Contains(t, prog.String(), `"headache"`)
}

func TestDream_Geometry(t *testing.T) {
	center := scene.Pt(480, 320)
	n := 5
	for i := 0; i < n; i++ {
		at, ring := planetPosition(center, 50, i, n, 4)
		assert.InDelta(t, 50+4*ringStep, ring, 1e-9)
		assert.InDelta(t, ring, math.Hypot(at.X-center.X, at.Y-center.Y), 1e-9)

		want := 2 * math.Pi * float64(i) / float64(n)
		got := math.Atan2(at.Y-center.Y, at.X-center.X)
		if got < 0 {
			got += 2 * math.Pi
		}
		assert.InDelta(t, want, got, 1e-9)
	}

	_, near := planetPosition(center, 50, 0, 1, 1)
	_, far := planetPosition(center, 50, 0, 1, 10)
	assert.Less(t, near, far)

	prog := DreamPlanets{}.Build(sampleDream())
	drifts := 0
	for _, a := range prog.Animators() {
		if d, ok := a.(*scene.Drift); ok {
			assert.Equal(t, float64(drifts), d.Phase, "phase derives from scene index")
			drifts++
		}
	}
	assert.Equal(t, 3, drifts)
	out := prog.String()
	assert.Contains(t, out, "new Color(0.878, 0.282, 0.282, 0.9)", "planet colour comes from colorHex")
	assert.Contains(t, out, `"a friend"`)
}

func TestAttendance_CellsAreExact(t *testing.T) {
	att := sampleAttendance()
	inner := canvas.Expand(-attendanceMargin)
	g := newCellGrid(inner, len(att.Rows), att.MaxColumns())

	want := map[[2]float64]bool{}
	present := 0
	for i, row := range att.Rows {
		for c := 0; c < att.MaxColumns(); c++ {
			x, y, _, _ := g.cell(i, c)
			want[[2]float64{x, y}] = c < len(row.Values) && row.Values[c] == 1
			if want[[2]float64{x, y}] {
				present++
			}
		}
	}

	cells, filledCells := 0, 0
	prog := AttendanceGrid{}.Build(att)
	prog.Walk(func(n scene.Node) {
		r, ok := n.(*scene.Rectangle)
		if !ok || r.StrokeWidth != 0.8 {
			return
		}
		isPresent, found := want[[2]float64{r.X, r.Y}]
		require.True(t, found, "cell at %v,%v not on the exact grid", r.X, r.Y)
		assert.Equal(t, isPresent, *r.Fill == presentFill)
		cells++
		if *r.Fill == presentFill {
			filledCells++
		}
	})
	assert.Equal(t, 6, cells)
	assert.Equal(t, present, filledCells)
	assert.Len(t, prog.Animators(), present, "one drifting check mark per present cell")
	assert.Contains(t, prog.String(), `"Row 2"`)
}

func TestStats_BarHeights(t *testing.T) {
	stats := sampleStats()
	inner := canvas.Expand(-statsMargin)
	l := newBarLayout(inner, stats.Categories)
	assert.Equal(t, 4.0, l.max)

	var heights, xs []float64
	StatsBars{}.Build(stats).Walk(func(n scene.Node) {
		if r, ok := n.(*scene.Rectangle); ok && r.StrokeWidth == 1.2 {
			heights = append(heights, r.H)
			xs = append(xs, r.X+r.W/2)
			assert.InDelta(t, l.bottom, r.Y+r.H, 1e-9, "bars stand on the baseline")
		}
	})
	require.Len(t, heights, 3)
	span := l.bottom - l.top
	assert.InDelta(t, span*0.25, heights[0], 1e-9)
	assert.InDelta(t, span, heights[1], 1e-9)
	assert.InDelta(t, span*0.5, heights[2], 1e-9)
	for i, x := range xs {
		assert.InDelta(t, l.left+l.barW*(float64(i)+0.5), x, 1e-9)
	}

	out := StatsBars{}.Build(stats).String()
	assert.Contains(t, out, `"B (4.0)"`)
}

func TestStats_FillFollowsCategoryPosition(t *testing.T) {
	fills := func(stats schema.Stats) []scene.Color {
		var out []scene.Color
		StatsBars{}.Build(stats).Walk(func(n scene.Node) {
			if r, ok := n.(*scene.Rectangle); ok && r.StrokeWidth == 1.2 {
				out = append(out, *r.Fill)
			}
		})
		return out
	}

	a := fills(sampleStats())
	require.Len(t, a, 3)
	for i, c := range a {
		assert.Equal(t, statsPalette[i], c)
	}

	// Different values reseed the jitter but leave the bar colours alone.
	other := schema.Stats{Categories: []schema.Category{{Name: "X", Value: 9}, {Name: "Y", Value: 0.5}, {Name: "Z", Value: 3}}}
	assert.Equal(t, a, fills(other))

	many := make([]schema.Category, len(statsPalette)+1)
	for i := range many {
		many[i] = schema.Category{Name: fmt.Sprintf("c%d", i), Value: float64(i + 1)}
	}
	wrapped := fills(schema.Stats{Categories: many})
	assert.Equal(t, wrapped[0], wrapped[len(statsPalette)])
}

func TestStats_ZeroMaxGuard(t *testing.T) {
	zero := schema.Stats{Categories: []schema.Category{{Name: "a", Value: 0}, {Name: "b", Value: 0}}}
	l := newBarLayout(canvas, zero.Categories)
	assert.Equal(t, 1.0, l.max)
	assert.Equal(t, 0.0, l.height(0))

	out := StatsBars{}.Build(zero).String()
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "Infinity")
}
