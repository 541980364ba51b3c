// Package lexicon holds the keyword tables that drive rule-based extraction
// and mode resolution. Tables are plain data so tests can assert against them.
package lexicon

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Weighted maps one keyword to a signed effect on a score.
type Weighted struct {
	Keyword string  `yaml:"keyword"`
	Delta   float64 `yaml:"delta"`
}

// Group is a named keyword set that applies Delta once when any keyword hits.
// Keywords match as substrings; Words match whole words only, for short
// stems like "rest" that hide inside "forest" or "interest".
type Group struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Words    []string `yaml:"words"`
	Delta    float64  `yaml:"delta"`
}

// Hits reports whether lower contains any of the group's keywords or words.
func (g Group) Hits(lower string) bool {
	return ContainsAny(lower, g.Keywords) || ContainsWord(lower, g.Words)
}

// Tagged maps a keyword set to a string tag (an emotion, a body note).
type Tagged struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Palette ties a dream emotion to its base intensity and colour.
type Palette struct {
	Emotion   string   `yaml:"emotion"`
	Intensity int      `yaml:"intensity"`
	Color     string   `yaml:"color"`
	Keywords  []string `yaml:"keywords"`
}

// WeekTables drive the week extractor.
type WeekTables struct {
	Mood       []Weighted `yaml:"mood"`
	Energy     []Weighted `yaml:"energy"`
	Connection []Weighted `yaml:"connection"`
	// KmDivisor turns an "N km" mention into N/KmDivisor energy.
	KmDivisor float64 `yaml:"km_divisor"`
}

// StressTables drive the stress extractor. Emotions are checked in order;
// the first hit wins.
type StressTables struct {
	Triggers []Group  `yaml:"triggers"`
	Recovery []Group  `yaml:"recovery"`
	Emotions []Tagged `yaml:"emotions"`
	Somatic  []Tagged `yaml:"somatic"`
}

// DreamTables drive the dream extractor. Palettes are checked in order.
type DreamTables struct {
	Palettes []Palette `yaml:"palettes"`
	Fallback Palette   `yaml:"fallback"`
	// Guides are whole-word tokens marking another person in the scene.
	Guides []string `yaml:"guides"`
}

// AttendanceTables hold the cell tokens an attendance CSV may use.
type AttendanceTables struct {
	Present []string `yaml:"present"`
	Absent  []string `yaml:"absent"`
}

// ResolverTables drive mode auto-detection.
type ResolverTables struct {
	CSVAttendance []string `yaml:"csv_attendance"`
	Dream         []string `yaml:"dream"`
	Stress        []string `yaml:"stress"`
}

// Lexicon is a complete, versioned set of tables.
type Lexicon struct {
	Version    string           `yaml:"version"`
	Week       WeekTables       `yaml:"week"`
	Stress     StressTables     `yaml:"stress"`
	Dream      DreamTables      `yaml:"dream"`
	Attendance AttendanceTables `yaml:"attendance"`
	Resolver   ResolverTables   `yaml:"resolver"`
}

// Load reads a YAML lexicon from path. The file replaces the built-in tables
// wholesale and must pass Validate.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lx.Validate(); err != nil {
		return nil, fmt.Errorf("validate lexicon %s: %w", path, err)
	}
	return &lx, nil
}

// Validate checks the invariants extractors rely on.
func (lx *Lexicon) Validate() error {
	if lx.Version == "" {
		return fmt.Errorf("missing version")
	}
	if lx.Week.KmDivisor <= 0 {
		return fmt.Errorf("week.km_divisor must be > 0")
	}
	if len(lx.Dream.Palettes) == 0 {
		return fmt.Errorf("dream.palettes is empty")
	}
	for _, p := range lx.Dream.Palettes {
		if err := p.validate(); err != nil {
			return err
		}
	}
	if err := lx.Dream.Fallback.validate(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	if len(lx.Attendance.Present) == 0 {
		return fmt.Errorf("attendance.present is empty")
	}
	return nil
}

func (p Palette) validate() error {
	if p.Emotion == "" {
		return fmt.Errorf("dream palette without emotion")
	}
	if p.Intensity < 1 || p.Intensity > 10 {
		return fmt.Errorf("dream palette %q: intensity %d out of [1,10]", p.Emotion, p.Intensity)
	}
	if !isHexColor(p.Color) {
		return fmt.Errorf("dream palette %q: bad color %q", p.Emotion, p.Color)
	}
	return nil
}

// Score sums the deltas of every keyword contained in lower. Each keyword
// counts once; distinct keywords accumulate.
func Score(lower string, table []Weighted) float64 {
	var total float64
	for _, w := range table {
		if w.Keyword != "" && strings.Contains(lower, w.Keyword) {
			total += w.Delta
		}
	}
	return total
}

// ContainsAny reports whether lower contains any keyword.
func ContainsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether any of words appears in lower as a whole word.
func ContainsWord(lower string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	for _, t := range tokens {
		if slices.Contains(words, t) {
			return true
		}
	}
	return false
}

// FirstTag returns the tag of the first entry with a keyword in lower.
func FirstTag(lower string, entries []Tagged) (string, bool) {
	for _, e := range entries {
		if ContainsAny(lower, e.Keywords) {
			return e.Tag, true
		}
	}
	return "", false
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
