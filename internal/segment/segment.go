// Package segment splits journal text into day-labelled or sentence-like
// segments. Every function is pure.
package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

// Segment is one keyed slice of the input text.
type Segment struct {
	Key     string
	Content string
}

// Full names are listed before their abbreviations so the leftmost-first
// alternation prefers the longer match.
var dayMarker = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|tues|thurs|thur|mon|tue|wed|thu|fri|sat|sun)\b`)

// shortestFullName is len("monday"); shorter matches are abbreviations.
const shortestFullName = 6

// Separator characters left between a day marker and its content.
const markerPunct = " \t\r\n:;,.-–—"

// Split segments text for mode. Week and attendance use day markers;
// every other mode uses sentences.
func Split(text string, mode schema.Mode) []Segment {
	switch mode {
	case schema.ModeWeek, schema.ModeAttendance:
		return Days(text)
	default:
		return Sentences(text)
	}
}

// Days returns exactly seven segments keyed Mon..Sun. A day's content runs
// from just after its first marker to the next marker of any day, or to the
// end of the text. Days without a marker get empty content.
func Days(text string) []Segment {
	out := make([]Segment, len(schema.DayNames))
	for i, name := range schema.DayNames {
		out[i] = Segment{Key: name}
	}

	matches := markers(text)
	seen := make([]bool, len(schema.DayNames))
	for i, m := range matches {
		day := DayIndex(text[m[0]:m[1]])
		if day < 0 || seen[day] {
			continue
		}
		seen[day] = true

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out[day].Content = strings.Trim(text[m[1]:end], markerPunct)
	}
	return out
}

// DayIndex maps a day name or abbreviation to 0 (Mon) .. 6 (Sun), or -1.
func DayIndex(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if len(w) < 3 {
		return -1
	}
	for i, name := range schema.DayNames {
		if strings.ToLower(name) == w[:3] {
			return i
		}
	}
	return -1
}

// HasDayMarker reports whether text names any weekday.
func HasDayMarker(text string) bool {
	return len(markers(text)) > 0
}

// markers returns the index pairs of day markers in text. Full day names
// always count. Abbreviations such as "sun", "sat" or "wed" are ordinary
// words too, so they count only in marker position: followed by a colon,
// by a spaced dash, or standing alone on their line.
func markers(text string) [][]int {
	all := dayMarker.FindAllStringIndex(text, -1)
	out := all[:0]
	for _, m := range all {
		if m[1]-m[0] >= shortestFullName || abbrevInMarkerPosition(text, m[0], m[1]) {
			out = append(out, m)
		}
	}
	return out
}

func abbrevInMarkerPosition(text string, start, end int) bool {
	rest := text[end:]
	after := strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(after, ":") {
		return true
	}
	if len(after) < len(rest) {
		for _, dash := range []string{"-", "–", "—"} {
			if strings.HasPrefix(after, dash) {
				return true
			}
		}
	}

	before := text[:start]
	if strings.TrimSpace(before[strings.LastIndexByte(before, '\n')+1:]) != "" {
		return false
	}
	if i := strings.IndexAny(after, "\r\n"); i >= 0 {
		after = after[:i]
	}
	return strings.TrimSpace(after) == ""
}

// Sentences splits on '.', '!', '?' and newlines, dropping fragments that are
// empty after trimming. Keys are 1-based positions.
func Sentences(text string) []Segment {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n', '\r':
			return true
		}
		return false
	})

	var out []Segment
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Segment{Key: strconv.Itoa(len(out) + 1), Content: p})
	}
	return out
}

// Subsample keeps at most max segments by uniform stride: when there are more
// than max, every k-th segment is kept with k = ceil(len/max). Order is
// preserved.
func Subsample(segs []Segment, max int) []Segment {
	if max <= 0 || len(segs) <= max {
		return segs
	}
	k := (len(segs) + max - 1) / max
	out := make([]Segment, 0, max)
	for i := 0; i < len(segs); i += k {
		out = append(out, segs[i])
	}
	return out
}

// FirstWords returns the first n whitespace-separated words of s.
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// Words lowercases s and splits it into letter/digit/apostrophe tokens.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r == '\'' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
}
