package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

func TestResolve(t *testing.T) {
	r := New(lexicon.Default().Resolver)

	tests := []struct {
		name string
		in   Input
		want Decision
	}{
		{
			name: "explicit selection beats everything",
			in:   Input{Requested: "Stats", Text: "I had a dream", CSV: "name,present", Hint: schema.ModeDream},
			want: Decision{schema.ModeStats, RuleRequested},
		},
		{
			name: "auto falls through",
			in:   Input{Requested: "auto", Text: "nothing special"},
			want: Decision{schema.ModeWeek, RuleDefault},
		},
		{
			name: "unknown selection falls through",
			in:   Input{Requested: "calendar", Text: "a strange vision"},
			want: Decision{schema.ModeDream, RuleDreamWords},
		},
		{
			name: "attendance tokens in csv",
			in:   Input{CSV: "Name,Mon\nAlice,Present\n", Hint: schema.ModeDream},
			want: Decision{schema.ModeAttendance, RuleCSVAttendance},
		},
		{
			name: "digits in csv",
			in:   Input{CSV: "category,value\nsleep,7\n", Hint: schema.ModeDream},
			want: Decision{schema.ModeStats, RuleCSVStats},
		},
		{
			name: "csv without signal defers to hint",
			in:   Input{CSV: "a,b\nc,d\n", Hint: schema.ModeStress},
			want: Decision{schema.ModeStress, RuleHint},
		},
		{
			name: "invalid hint ignored",
			in:   Input{Text: "so much stress", Hint: schema.Mode("poem")},
			want: Decision{schema.ModeStress, RuleStressWords},
		},
		{
			name: "dream before stress",
			in:   Input{Text: "Last night I was anxious in a dream"},
			want: Decision{schema.ModeDream, RuleDreamWords},
		},
		{
			name: "weekday marker",
			in:   Input{Text: "Went running on Tuesday"},
			want: Decision{schema.ModeWeek, RuleWeekdays},
		},
		{
			name: "blank csv is absent",
			in:   Input{CSV: "  \n", Text: "hello"},
			want: Decision{schema.ModeWeek, RuleDefault},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.in))
		})
	}
}

func TestResolve_AlwaysValid(t *testing.T) {
	r := New(lexicon.Default().Resolver)
	for _, text := range []string{"", "x", "Mon", "dream", "123"} {
		got := r.Resolve(Input{Requested: schema.ModeAuto, Text: text, CSV: text})
		assert.True(t, got.Mode.Valid(), text)
	}
}
