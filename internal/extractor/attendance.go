package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

// Synthetic grid used when no table is supplied.
const (
	syntheticRows    = 5
	syntheticCols    = 7
	runesPerPresence = 40
)

// Attendance reads a presence grid from csvText. Without a table it derives
// a synthetic 5x7 grid whose count of ones grows with the length of text.
func (e *Extractor) Attendance(text, csvText string) schema.Attendance {
	if strings.TrimSpace(csvText) == "" {
		return syntheticAttendance(text)
	}

	present := tokenSet(e.lex.Attendance.Present)
	absent := tokenSet(e.lex.Attendance.Absent)

	rows := e.parseCSV(csvText)
	if len(rows) > 0 && isAttendanceHeader(rows[0], present, absent) {
		rows = rows[1:]
	}

	out := make([]schema.AttendanceRow, 0, len(rows))
	for i, rec := range rows {
		label := rec[0]
		if label == "" {
			label = fmt.Sprintf("Row %d", i+1)
		}
		cells := rec[1:]
		if len(cells) > schema.MaxAttendanceColumns {
			cells = cells[:schema.MaxAttendanceColumns]
		}
		values := make([]int, len(cells))
		for j, c := range cells {
			if present[strings.ToLower(c)] {
				values[j] = 1
			}
		}
		out = append(out, schema.AttendanceRow{Label: label, Values: values})
	}
	return schema.Attendance{Rows: out}
}

// isAttendanceHeader reports whether rec has at least one non-empty value
// cell and none of its value cells is a presence or absence token. A row of
// blank cells carries no header text, so it stays a data row.
func isAttendanceHeader(rec []string, present, absent map[string]bool) bool {
	named := false
	for _, c := range rec[1:] {
		c = strings.ToLower(c)
		if present[c] || absent[c] {
			return false
		}
		if c != "" {
			named = true
		}
	}
	return named
}

func syntheticAttendance(text string) schema.Attendance {
	ones := clampInt(utf8.RuneCountInString(text)/runesPerPresence, 1, syntheticRows*syntheticCols)

	rows := make([]schema.AttendanceRow, syntheticRows)
	for r := range rows {
		values := make([]int, syntheticCols)
		for c := range values {
			if r*syntheticCols+c < ones {
				values[c] = 1
			}
		}
		rows[r] = schema.AttendanceRow{Label: fmt.Sprintf("Row %d", r+1), Values: values}
	}
	return schema.Attendance{Rows: rows}
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return set
}
