package extractor

import (
	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/segment"
)

const (
	// MaxStressPoints caps the timeline after uniform subsampling.
	MaxStressPoints = 8

	baseStress       = 3.0
	stressLabelWords = 3
	anxiousThreshold = 7
)

// Stress builds a timeline with one point per retained sentence.
func (e *Extractor) Stress(text string) schema.Stress {
	tables := e.lex.Stress
	segs := segment.Subsample(segment.Sentences(text), MaxStressPoints)
	n := len(segs)

	points := make([]schema.StressPoint, 0, n)
	for i, seg := range segs {
		l := lower(seg.Content)

		score := baseStress
		for _, g := range tables.Triggers {
			if g.Hits(l) {
				score += g.Delta
			}
		}
		for _, g := range tables.Recovery {
			if g.Hits(l) {
				score += g.Delta
			}
		}
		stress := roundClamp(score, 1, 10)

		var position float64
		if n > 1 {
			position = float64(i) / float64(n-1)
		}

		emotion, ok := lexicon.FirstTag(l, tables.Emotions)
		if !ok {
			emotion = "tense"
			if stress >= anxiousThreshold {
				emotion = "anxious"
			}
		}
		body, _ := lexicon.FirstTag(l, tables.Somatic)

		points = append(points, schema.StressPoint{
			Label:    segment.FirstWords(seg.Content, stressLabelWords),
			Position: position,
			Stress:   stress,
			Emotion:  emotion,
			BodyNote: body,
		})
	}
	return schema.Stress{Timeline: points}
}
