package extractor

import (
	"strings"

	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/segment"
)

const (
	// MaxDreamScenes caps the scene list after uniform subsampling.
	MaxDreamScenes = 4

	dreamLabelRunes = 40
	orbitCount      = 4
)

// Dream builds one scene per retained sentence. The palette is chosen by the
// first matching table entry; orbit cycles with the scene index.
func (e *Extractor) Dream(text string) schema.Dream {
	tables := e.lex.Dream
	guides := make(map[string]bool, len(tables.Guides))
	for _, g := range tables.Guides {
		guides[strings.ToLower(g)] = true
	}

	segs := segment.Subsample(segment.Sentences(text), MaxDreamScenes)
	scenes := make([]schema.DreamScene, 0, len(segs))
	for i, seg := range segs {
		p := pickPalette(lower(seg.Content), tables)

		hasGuide := false
		for _, w := range segment.Words(seg.Content) {
			if guides[w] {
				hasGuide = true
				break
			}
		}

		scenes = append(scenes, schema.DreamScene{
			ID:        i + 1,
			Label:     schema.Truncate(seg.Content, dreamLabelRunes),
			Emotion:   p.Emotion,
			Intensity: clampInt(p.Intensity, 1, 10),
			ColorHex:  strings.ToLower(p.Color),
			Orbit:     i%orbitCount + 1,
			HasGuide:  hasGuide,
		})
	}
	return schema.Dream{Scenes: scenes}
}

func pickPalette(l string, tables lexicon.DreamTables) lexicon.Palette {
	for _, p := range tables.Palettes {
		if lexicon.ContainsAny(l, p.Keywords) {
			return p
		}
	}
	return tables.Fallback
}
