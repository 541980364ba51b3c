package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualStandardTable(t *testing.T) {
	want := map[Mode]VisualStandard{
		ModeWeek:       StandardA,
		ModeStress:     StandardB,
		ModeDream:      StandardC,
		ModeAttendance: StandardD,
		ModeStats:      StandardE,
	}
	for _, m := range Modes {
		s := Assemble(m, InputStory, nil, "")
		assert.Equal(t, want[m], s.VisualStandard, "mode %s", m)

		back, ok := ModeForStandard(s.VisualStandard)
		require.True(t, ok)
		assert.Equal(t, m, back)
	}
	assert.Equal(t, VisualStandard(""), Mode("bogus").VisualStandard())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("  Dream ")
	require.NoError(t, err)
	assert.Equal(t, ModeDream, m)

	_, err = ParseMode("auto")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseInputStyle(t *testing.T) {
	assert.Equal(t, InputStory, ParseInputStyle("", false))
	assert.Equal(t, InputTableTimeSeries, ParseInputStyle("", true))
	assert.Equal(t, InputStory, ParseInputStyle("story", true))
	assert.Equal(t, InputTableTimeSeries, ParseInputStyle("TABLE_TIME_SERIES", false))
}

func TestAssemble_TruncatesNotes(t *testing.T) {
	text := "  " + strings.Repeat("é", 400) + "  "
	s := Assemble(ModeWeek, InputStory, Week{}, text)
	assert.Equal(t, MaxNotesRunes, len([]rune(s.Notes)))
	assert.True(t, s.Consistent())
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	days := []DayFeature{{Name: "Mon", Mood: 3, Energy: 2, ConnectionScore: 0.3}}
	dims := Week{Days: days}
	s := Assemble(ModeWeek, InputStory, dims, "x")
	assert.Equal(t, "Mon", days[0].Name)
	assert.Equal(t, 1, s.Dimensions.Len())
}

func TestConsistent(t *testing.T) {
	assert.True(t, Assemble(ModeStats, InputStory, Stats{}, "").Consistent())
	assert.True(t, Schema{Mode: ModeDream}.Consistent())
	assert.False(t, Schema{Mode: ModeAttendance, Dimensions: Stats{}}.Consistent())
	assert.False(t, Schema{Mode: "unknown", Dimensions: Week{}}.Consistent())
}

func TestSchemaJSON_RoundTripKeepsVariant(t *testing.T) {
	in := Assemble(ModeAttendance, InputTableTimeSeries, Attendance{Rows: []AttendanceRow{
		{Label: "Alice", Values: []int{1, 0, 1}},
	}}, "notes")

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"visualStandard":"D"`)
	assert.Contains(t, string(data), `"rows":[{"label":"Alice","values":[1,0,1]}]`)

	var out Schema
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestSchemaJSON_CorruptedShape(t *testing.T) {
	raw := `{"mode":"attendance","visualStandard":"D","dimensions":{"categories":[{"name":"A","value":1}]}}`
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, ModeAttendance, s.Mode)
	require.NotNil(t, s.Dimensions)
	assert.Equal(t, ModeStats, s.Dimensions.Mode())
	assert.False(t, s.Consistent())
}

func TestSchemaJSON_WrongTypesDegradeToNoPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		mode Mode
	}{
		{"days as object", `{"mode":"week","dimensions":{"days":{"x":1}}}`, ModeWeek},
		{"dimensions as array", `{"mode":"stats","dimensions":[]}`, ModeStats},
		{"dimensions as string", `{"mode":"dream","dimensions":"planets"}`, ModeDream},
		{"string in values", `{"mode":"attendance","dimensions":{"rows":[{"label":"a","values":"oops"}]}}`, ModeAttendance},
		{"string stress", `{"mode":"stress","dimensions":{"timeline":[{"stress":"high"}]}}`, ModeStress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Schema
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.mode, s.Mode)
			assert.Nil(t, s.Dimensions)
		})
	}
}

func TestSchemaJSON_WrongEnvelopeTypes(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"mode":7,"visualStandard":["B"],"notes":false,"dimensions":{"categories":[{"name":"a","value":2}]}}`), &s))
	assert.Empty(t, s.Mode)
	assert.Empty(t, s.VisualStandard)
	assert.Empty(t, s.Notes)
	assert.Equal(t, Stats{Categories: []Category{{Name: "a", Value: 2}}}, s.Dimensions)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"mode":`), &s))
}

func TestSchemaJSON_MissingDimensions(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"week"}`), &s))
	assert.Nil(t, s.Dimensions)
	assert.True(t, s.Consistent())
}

func TestAttendanceMaxColumns(t *testing.T) {
	a := Attendance{Rows: []AttendanceRow{{Values: []int{1}}, {Values: []int{0, 1, 1}}}}
	assert.Equal(t, 3, a.MaxColumns())
	assert.Equal(t, 0, Attendance{}.MaxColumns())
}
