package extractor

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExtractor() *Extractor {
	return New(nil, discardLogger())
}

func TestWeek_SingleDayAndBaselines(t *testing.T) {
	w := newTestExtractor().Week("Mon: coffee with friends, felt great")
	require.Len(t, w.Days, 7)

	mon := w.Days[0]
	assert.Equal(t, "Mon", mon.Name)
	assert.Equal(t, 4, mon.Mood)
	assert.Equal(t, 2, mon.Energy)
	assert.InDelta(t, 0.55, mon.ConnectionScore, 1e-9)
	assert.Equal(t, "coffee with friends, felt great", mon.Label)

	for i, d := range w.Days[1:] {
		assert.Equal(t, schema.DayNames[i+1], d.Name)
		assert.Equal(t, schema.DayFeature{Name: d.Name, Mood: 3, Energy: 2, ConnectionScore: 0.3}, d)
	}
}

func TestWeek_Distance(t *testing.T) {
	w := newTestExtractor().Week("Tue: ran 12 km along the river. Sat: gym then a 25km ride")
	assert.Equal(t, 3, w.Days[1].Energy, "2 + 12/10 rounds to 3")
	assert.Equal(t, 5, w.Days[5].Energy, "2 + 0.7 + 2.5 clamps to 5")
}

func TestWeek_ClampsAndLabels(t *testing.T) {
	w := newTestExtractor().Week(
		"Wed: sad stress anxious angry tired bad lonely. " +
			"Thu: happy great joy love fun good with friend family party call meet talk group team today")

	assert.Equal(t, 1, w.Days[2].Mood)
	assert.Equal(t, 5, w.Days[3].Mood)
	assert.Equal(t, 1.0, w.Days[3].ConnectionScore)
	assert.Equal(t, "happy great joy love fun good", w.Days[3].Label)
}

func TestWeek_CommonWordsStayOnTheirDay(t *testing.T) {
	w := newTestExtractor().Week("Mon: long hike in the sun with friends, felt great. Tue: sat at my desk all day, tired.")

	assert.Equal(t, "long hike in the sun with", w.Days[0].Label)
	assert.Greater(t, w.Days[0].ConnectionScore, 0.3)
	assert.Equal(t, "sat at my desk all day,", w.Days[1].Label)
	for _, i := range []int{5, 6} {
		assert.Equal(t, schema.DayFeature{Name: schema.DayNames[i], Mood: 3, Energy: 2, ConnectionScore: 0.3}, w.Days[i])
	}
}

func TestWeek_KeywordCountsOnce(t *testing.T) {
	w := newTestExtractor().Week("Fri: happy happy happy happy")
	assert.Equal(t, 4, w.Days[4].Mood, "3 + 0.6 once")
}

func TestStress_SubsampledTimeline(t *testing.T) {
	sentences := make([]string, 20)
	for i := range sentences {
		sentences[i] = "The day went on as usual"
	}
	sentences[0] = "The deadline loomed over everything"
	sentences[3] = "I took a walk to calm down"

	s := newTestExtractor().Stress(strings.Join(sentences, ". ") + ".")
	require.LessOrEqual(t, len(s.Timeline), MaxStressPoints)
	require.Len(t, s.Timeline, 7)

	assert.Equal(t, 0.0, s.Timeline[0].Position)
	assert.Equal(t, 1.0, s.Timeline[len(s.Timeline)-1].Position)
	for i := 1; i < len(s.Timeline); i++ {
		assert.Greater(t, s.Timeline[i].Position, s.Timeline[i-1].Position)
	}

	deadline := s.Timeline[0]
	assert.Equal(t, 5, deadline.Stress)
	assert.Equal(t, "tense", deadline.Emotion)
	assert.Equal(t, "The deadline loomed", deadline.Label)

	walk := s.Timeline[1]
	assert.Equal(t, 2, walk.Stress)
	assert.Equal(t, "relieved", walk.Emotion)

	assert.Equal(t, 3, s.Timeline[2].Stress)
}

func TestStress_EmotionAndBody(t *testing.T) {
	s := newTestExtractor().Stress(
		"Exam day and no sleep after the argument with my chest tight. " +
			"I was so annoyed at the bus. " +
			"Felt panic before the interview with a headache. " +
			"Quiet evening")
	require.Len(t, s.Timeline, 4)

	assert.Equal(t, 9, s.Timeline[0].Stress)
	assert.Equal(t, "anxious", s.Timeline[0].Emotion)
	assert.Equal(t, "chest tightness", s.Timeline[0].BodyNote)

	assert.Equal(t, "angry", s.Timeline[1].Emotion)
	assert.Empty(t, s.Timeline[1].BodyNote)

	assert.Equal(t, 5, s.Timeline[2].Stress)
	assert.Equal(t, "afraid", s.Timeline[2].Emotion)
	assert.Equal(t, "headache", s.Timeline[2].BodyNote)

	assert.Equal(t, "tense", s.Timeline[3].Emotion)
}

func TestStress_RestCountsOnlyAsAWord(t *testing.T) {
	s := newTestExtractor().Stress(
		"I finally got some rest. " +
			"Lost interest in the forest trail")
	require.Len(t, s.Timeline, 2)

	assert.Equal(t, 2, s.Timeline[0].Stress)
	assert.Equal(t, 3, s.Timeline[1].Stress)
}

func TestStress_SinglePointAndEmpty(t *testing.T) {
	s := newTestExtractor().Stress("Just one line")
	require.Len(t, s.Timeline, 1)
	assert.Equal(t, 0.0, s.Timeline[0].Position)

	assert.Empty(t, newTestExtractor().Stress("   ").Timeline)
}

func TestDream_TwoScenes(t *testing.T) {
	d := newTestExtractor().Dream("I was scared in a dark forest. Then a friend appeared and it felt calm.")
	require.Len(t, d.Scenes, 2)

	assert.Equal(t, schema.DreamScene{
		ID: 1, Label: "I was scared in a dark forest", Emotion: "afraid",
		Intensity: 8, ColorHex: "#e04848", Orbit: 1, HasGuide: false,
	}, d.Scenes[0])

	second := d.Scenes[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "peaceful", second.Emotion)
	assert.Equal(t, 3, second.Intensity)
	assert.Equal(t, "#5b8def", second.ColorHex)
	assert.Equal(t, 2, second.Orbit)
	assert.True(t, second.HasGuide)
}

func TestDream_SubsampleOrbitAndFallback(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten"
	d := newTestExtractor().Dream(text)
	require.Len(t, d.Scenes, 4)

	var labels []string
	for i, sc := range d.Scenes {
		labels = append(labels, sc.Label)
		assert.Equal(t, i+1, sc.ID)
		assert.Equal(t, i%4+1, sc.Orbit)
		assert.Equal(t, "curious", sc.Emotion)
		assert.Equal(t, 5, sc.Intensity)
	}
	assert.Equal(t, []string{"One", "Four", "Seven", "Ten"}, labels)
}

func TestDream_GuideIsWholeWord(t *testing.T) {
	d := newTestExtractor().Dream("The house was hollow and theme music played")
	require.Len(t, d.Scenes, 1)
	assert.False(t, d.Scenes[0].HasGuide, "substrings like 'he' in 'the' must not count")
}

func TestDream_LabelTruncated(t *testing.T) {
	d := newTestExtractor().Dream(strings.Repeat("x", 100))
	require.Len(t, d.Scenes, 1)
	assert.Equal(t, 40, len([]rune(d.Scenes[0].Label)))
}

func TestAttendance_CSVWithHeader(t *testing.T) {
	a := newTestExtractor().Attendance("", "Name,Mon,Tue,Wed\nAlice,1,0,yes\n")
	require.Len(t, a.Rows, 1)
	assert.Equal(t, schema.AttendanceRow{Label: "Alice", Values: []int{1, 0, 1}}, a.Rows[0])
}

func TestAttendance_CSVWithoutHeader(t *testing.T) {
	a := newTestExtractor().Attendance("", "Bob, Present ,absent,P\n,TRUE,x\n")
	require.Len(t, a.Rows, 2)
	assert.Equal(t, schema.AttendanceRow{Label: "Bob", Values: []int{1, 0, 1}}, a.Rows[0])
	assert.Equal(t, schema.AttendanceRow{Label: "Row 2", Values: []int{1, 0}}, a.Rows[1])
}

func TestAttendance_BlankFirstRowIsData(t *testing.T) {
	a := newTestExtractor().Attendance("", "Alice,,,\nBob,1,0,1\n")
	require.Len(t, a.Rows, 2)
	assert.Equal(t, schema.AttendanceRow{Label: "Alice", Values: []int{0, 0, 0}}, a.Rows[0])
	assert.Equal(t, schema.AttendanceRow{Label: "Bob", Values: []int{1, 0, 1}}, a.Rows[1])

	a = newTestExtractor().Attendance("", "Alice\nBob,1\n")
	require.Len(t, a.Rows, 2)
	assert.Equal(t, "Alice", a.Rows[0].Label)
	assert.Empty(t, a.Rows[0].Values)
}

func TestAttendance_TruncatesColumns(t *testing.T) {
	row := "Carol" + strings.Repeat(",1", 20)
	a := newTestExtractor().Attendance("", row)
	require.Len(t, a.Rows, 1)
	assert.Len(t, a.Rows[0].Values, schema.MaxAttendanceColumns)
}

func TestAttendance_SyntheticGrid(t *testing.T) {
	ones := func(a schema.Attendance) int {
		n := 0
		for _, r := range a.Rows {
			require.Len(t, r.Values, 7)
			for _, v := range r.Values {
				n += v
			}
		}
		return n
	}
	ex := newTestExtractor()

	a := ex.Attendance("short", "")
	require.Len(t, a.Rows, 5)
	assert.Equal(t, 1, ones(a))
	assert.Equal(t, 1, a.Rows[0].Values[0])

	a = ex.Attendance(strings.Repeat("a", 400), "  ")
	assert.Equal(t, 10, ones(a))
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0, 0}, a.Rows[1].Values, "filled row-major")

	a = ex.Attendance(strings.Repeat("a", 5000), "")
	assert.Equal(t, 35, ones(a))
}

func TestStats_Placeholder(t *testing.T) {
	want := []schema.Category{{Name: "A", Value: 1}, {Name: "B", Value: 2}, {Name: "C", Value: 3}}
	ex := newTestExtractor()

	assert.Equal(t, want, ex.Stats("").Categories)
	assert.Equal(t, want, ex.Stats("only,header\n").Categories)

	got := ex.Stats("")
	got.Categories[0].Value = 99
	assert.Equal(t, want, ex.Stats("").Categories, "placeholder must not be shared")
}

func TestStats_ParsesRows(t *testing.T) {
	csvText := "category,value\nsleep,7.5\nwork,n/a\nfun,-3\nfocus,42%\n,2\nsixth,1\nseventh,1\n"
	s := newTestExtractor().Stats(csvText)

	assert.Equal(t, []schema.Category{
		{Name: "sleep", Value: 7.5},
		{Name: "work", Value: 2},
		{Name: "fun", Value: 0},
		{Name: "focus", Value: 42},
		{Name: "Item 5", Value: 2},
	}, s.Categories)
}

func TestExtract_Dispatch(t *testing.T) {
	ex := newTestExtractor()
	for _, m := range schema.Modes {
		dims := ex.Extract(m, "Mon: fine. Tue: ok", "")
		assert.Equal(t, m, dims.Mode())
	}
	assert.Equal(t, schema.ModeWeek, ex.Extract(schema.Mode("bogus"), "x", "").Mode())
}

func TestExtract_RangeInvariants(t *testing.T) {
	ex := newTestExtractor()
	texts := []string{
		"",
		"Mon: happy happy great 40 km gym workout friends family party",
		"Tue: sad tired exhausted. Wed: argument, deadline, no sleep, exam, fight, headache",
		"I dreamt I was flying over a bright city with my sister. It turned dark and a monster chased us. " +
			"Then calm water. Then a stranger waved. Then nothing. Another thing",
	}

	for _, text := range texts {
		for _, d := range ex.Week(text).Days {
			assert.True(t, d.Mood >= 1 && d.Mood <= 5)
			assert.True(t, d.Energy >= 1 && d.Energy <= 5)
			assert.True(t, d.ConnectionScore >= 0 && d.ConnectionScore <= 1)
			assert.LessOrEqual(t, len([]rune(d.Label)), 90)
		}
		prev := -1.0
		for _, p := range ex.Stress(text).Timeline {
			assert.True(t, p.Stress >= 1 && p.Stress <= 10)
			assert.GreaterOrEqual(t, p.Position, prev)
			prev = p.Position
		}
		for _, s := range ex.Dream(text).Scenes {
			assert.True(t, s.Intensity >= 1 && s.Intensity <= 10)
			assert.True(t, s.Orbit >= 1 && s.Orbit <= 4)
			assert.Regexp(t, `^#[0-9a-f]{6}$`, s.ColorHex)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Mon: gym, 5 km. Tue: deadline stress. I dreamt of a calm sea with a friend."
	csvText := "Name,a,b\nZed,1,0\n"

	for _, m := range schema.Modes {
		first := New(nil, discardLogger()).Extract(m, text, csvText)
		for i := 0; i < 5; i++ {
			again := New(nil, discardLogger()).Extract(m, text, csvText)
			if diff := cmp.Diff(first, again); diff != "" {
				t.Fatalf("mode %s: extraction not deterministic (-first +again):\n%s", m, diff)
			}
		}
	}
}
