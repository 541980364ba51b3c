// Package resolver picks the visualization mode for a submission. Rules are
// checked in a fixed order and the first match wins; when nothing matches the
// result is week.
package resolver

import (
	"strings"
	"unicode"

	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/segment"
)

// Rule names the resolution step that produced a mode.
type Rule string

const (
	RuleRequested     Rule = "requested"
	RuleCSVAttendance Rule = "csv_attendance"
	RuleCSVStats      Rule = "csv_stats"
	RuleHint          Rule = "collaborator_hint"
	RuleDreamWords    Rule = "dream_keywords"
	RuleStressWords   Rule = "stress_keywords"
	RuleWeekdays      Rule = "weekday_marker"
	RuleDefault       Rule = "default"
)

// Input carries everything the resolver looks at.
type Input struct {
	// Requested is the user's selection: a mode, "auto" or empty.
	Requested string
	Text      string
	CSV       string
	// Hint is a classification from the summary collaborator, if any.
	Hint schema.Mode
}

// Decision is the resolved mode and the rule that chose it.
type Decision struct {
	Mode schema.Mode
	Rule Rule
}

type Resolver struct {
	tables lexicon.ResolverTables
}

func New(tables lexicon.ResolverTables) *Resolver {
	return &Resolver{tables: tables}
}

// Resolve applies the rules in order:
// explicit selection, CSV content, collaborator hint, text keywords, default.
func (r *Resolver) Resolve(in Input) Decision {
	if m, err := schema.ParseMode(in.Requested); err == nil {
		return Decision{Mode: m, Rule: RuleRequested}
	}

	if strings.TrimSpace(in.CSV) != "" {
		csvLower := strings.ToLower(in.CSV)
		if lexicon.ContainsAny(csvLower, r.tables.CSVAttendance) {
			return Decision{Mode: schema.ModeAttendance, Rule: RuleCSVAttendance}
		}
		if strings.IndexFunc(in.CSV, unicode.IsDigit) >= 0 {
			return Decision{Mode: schema.ModeStats, Rule: RuleCSVStats}
		}
	}

	if in.Hint.Valid() {
		return Decision{Mode: in.Hint, Rule: RuleHint}
	}

	text := strings.ToLower(in.Text)
	switch {
	case lexicon.ContainsAny(text, r.tables.Dream):
		return Decision{Mode: schema.ModeDream, Rule: RuleDreamWords}
	case lexicon.ContainsAny(text, r.tables.Stress):
		return Decision{Mode: schema.ModeStress, Rule: RuleStressWords}
	case segment.HasDayMarker(in.Text):
		return Decision{Mode: schema.ModeWeek, Rule: RuleWeekdays}
	}
	return Decision{Mode: schema.ModeWeek, Rule: RuleDefault}
}
