// Package render maps typed dimension payloads to animated drawing programs.
// There is one Renderer per visual standard; Dispatch picks one for a Schema.
// Geometry comes from data values only. Seeded jitter touches strokes, cloud
// outlines and grid lines, never data points or cells.
package render

import (
	"github.com/MikeSquared-Agency/journalviz/internal/scene"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

// Renderer builds the scene for one visual standard. Build is total: a
// payload of the wrong shape, or an empty one, yields the placeholder scene.
type Renderer interface {
	Standard() schema.VisualStandard
	Build(dims schema.Dimensions) *scene.Program
}

var renderers = map[schema.VisualStandard]Renderer{
	schema.StandardA: WeekWave{},
	schema.StandardB: StressStorm{},
	schema.StandardC: DreamPlanets{},
	schema.StandardD: AttendanceGrid{},
	schema.StandardE: StatsBars{},
}

// For returns the renderer for vs.
func For(vs schema.VisualStandard) (Renderer, bool) {
	r, ok := renderers[vs]
	return r, ok
}

// Dispatch selects the renderer for s: by mode, then by visual standard,
// then the week renderer. A payload whose shape does not match the selected
// renderer also falls back to the week renderer.
func Dispatch(s schema.Schema) Renderer {
	r := selectRenderer(s)
	if s.Dimensions == nil {
		return r
	}
	if m, _ := schema.ModeForStandard(r.Standard()); s.Dimensions.Mode() != m {
		return WeekWave{}
	}
	return r
}

func selectRenderer(s schema.Schema) Renderer {
	if s.Mode.Valid() {
		return renderers[s.Mode.VisualStandard()]
	}
	if r, ok := renderers[s.VisualStandard]; ok {
		return r
	}
	if m, ok := schema.ModeForStandard(s.VisualStandard); ok {
		return renderers[m.VisualStandard()]
	}
	return WeekWave{}
}

// Build returns the scene for s.
func Build(s schema.Schema) *scene.Program {
	return Dispatch(s).Build(s.Dimensions)
}

// Render returns the drawing program for s. It never fails and never
// returns an empty string.
func Render(s schema.Schema) string {
	return Build(s).String()
}
