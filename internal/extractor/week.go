package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/segment"
)

const (
	baseMood       = 3.0
	baseEnergy     = 2.0
	baseConnection = 0.3

	weekLabelWords = 6
	weekLabelRunes = 90
)

var kmPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*km\b`)

// Week scores each of the seven day segments against the week tables.
// Days with no segment keep the baseline values and an empty label.
func (e *Extractor) Week(text string) schema.Week {
	tables := e.lex.Week
	segs := segment.Days(text)

	days := make([]schema.DayFeature, len(segs))
	for i, seg := range segs {
		day := schema.DayFeature{
			Name:            seg.Key,
			Mood:            int(baseMood),
			Energy:          int(baseEnergy),
			ConnectionScore: baseConnection,
		}
		if seg.Content != "" {
			l := lower(seg.Content)
			mood := baseMood + lexicon.Score(l, tables.Mood)
			energy := baseEnergy + lexicon.Score(l, tables.Energy) + e.kilometres(l)/tables.KmDivisor
			conn := baseConnection + lexicon.Score(l, tables.Connection)

			day.Mood = roundClamp(mood, 1, 5)
			day.Energy = roundClamp(energy, 1, 5)
			day.ConnectionScore = clampFloat(conn, 0, 1)
			day.Label = schema.Truncate(segment.FirstWords(seg.Content, weekLabelWords), weekLabelRunes)
		}
		days[i] = day
	}
	return schema.Week{Days: days}
}

// kilometres sums every "N km" mention in l. Unparseable numbers are skipped.
func (e *Extractor) kilometres(l string) float64 {
	var total float64
	for _, m := range kmPattern.FindAllStringSubmatch(l, -1) {
		n, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			e.logger.Debug("skipping distance", "error", err)
			continue
		}
		total += n
	}
	return total
}
