package extractor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

// MaxStatsCategories caps the data rows read from a stats table.
const MaxStatsCategories = 5

var placeholderCategories = []schema.Category{
	{Name: "A", Value: 1},
	{Name: "B", Value: 2},
	{Name: "C", Value: 3},
}

// Stats reads up to five categories from csvText, skipping the header row.
// A value that does not parse takes the row's 1-based index; negative values
// clamp to zero. Tables with fewer than two rows yield the A/B/C placeholder.
func (e *Extractor) Stats(csvText string) schema.Stats {
	rows := e.parseCSV(csvText)
	if len(rows) < 2 {
		return schema.Stats{Categories: append([]schema.Category(nil), placeholderCategories...)}
	}

	data := rows[1:]
	if len(data) > MaxStatsCategories {
		data = data[:MaxStatsCategories]
	}

	cats := make([]schema.Category, 0, len(data))
	for i, rec := range data {
		name := rec[0]
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		cats = append(cats, schema.Category{Name: name, Value: e.statValue(rec, i+1)})
	}
	return schema.Stats{Categories: cats}
}

func (e *Extractor) statValue(rec []string, index int) float64 {
	if len(rec) < 2 {
		return float64(index)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(rec[1], "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		e.logger.Debug("stats value fallback", "row", index)
		return float64(index)
	}
	return math.Max(v, 0)
}
