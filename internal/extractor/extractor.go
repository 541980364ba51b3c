// Package extractor turns journal text and CSV tables into the typed
// dimension payload for each mode. Extraction is rule-based and total: bad
// fields and rows fall back to defaults instead of failing the call.
package extractor

import (
	"log/slog"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

type Extractor struct {
	lex    *lexicon.Lexicon
	logger *slog.Logger
}

// New returns an Extractor over lx. A nil lexicon selects the built-in tables.
func New(lx *lexicon.Lexicon, logger *slog.Logger) *Extractor {
	if lx == nil {
		lx = lexicon.Default()
	}
	return &Extractor{lex: lx, logger: logger}
}

// Lexicon returns the tables the extractor was built with.
func (e *Extractor) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// Extract runs the extractor for mode. Unknown modes extract a week.
func (e *Extractor) Extract(mode schema.Mode, text, csvText string) schema.Dimensions {
	var dims schema.Dimensions
	switch mode {
	case schema.ModeStress:
		dims = e.Stress(text)
	case schema.ModeDream:
		dims = e.Dream(text)
	case schema.ModeAttendance:
		dims = e.Attendance(text, csvText)
	case schema.ModeStats:
		dims = e.Stats(csvText)
	default:
		dims = e.Week(text)
	}

	e.logger.Debug("extraction complete",
		"mode", dims.Mode(),
		"items", dims.Len(),
		"text_len", len(text),
		"csv_len", len(csvText),
	)
	return dims
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundClamp rounds half away from zero, then clamps.
func roundClamp(v float64, lo, hi int) int {
	return clampInt(int(math.Round(v)), lo, hi)
}

func lower(s string) string {
	return strings.ToLower(s)
}
