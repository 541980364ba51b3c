// Package summary talks to the optional language-model collaborator that
// writes a short prose summary and a coarse mood for a journal submission.
//
// Nothing here is authoritative for structured data: a response only ever
// contributes a summary, a mood word, a mood intensity and, at most, a hint
// for the mode resolver. Every failure collapses into Fallback.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

var (
	// ErrInvalidResponse means the collaborator answered with something that
	// does not satisfy the response contract.
	ErrInvalidResponse = errors.New("invalid collaborator response")

	// ErrUnavailable means no collaborator is configured.
	ErrUnavailable = errors.New("summary collaborator unavailable")
)

const (
	FallbackSummary       = "Summary unavailable; showing a deterministic interpretation."
	FallbackMoodWord      = "neutral"
	FallbackMoodIntensity = 3

	maxMoodWordRunes = 32
	maxTokens        = 600
)

// Request is what the collaborator sees. Mode is the user's selection and
// may be "auto".
type Request struct {
	Mode string
	Text string
	CSV  string
}

// Result is a validated collaborator answer.
type Result struct {
	Summary       string
	MoodWord      string
	MoodIntensity int

	// JournalType is set only when the collaborator named a valid mode.
	JournalType schema.Mode
}

// Collaborator produces a Result for a Request. Implementations make a
// single call with no retry; callers own the timeout.
type Collaborator interface {
	Name() string
	Summarize(ctx context.Context, req Request) (Result, error)
}

// Fallback is the deterministic stand-in used whenever the collaborator is
// absent or fails.
func Fallback() Result {
	return Result{
		Summary:       FallbackSummary,
		MoodWord:      FallbackMoodWord,
		MoodIntensity: FallbackMoodIntensity,
	}
}

// response is the JSON contract the model is asked to produce.
type response struct {
	Summary       string `json:"summary" jsonschema:"description=One short paragraph interpreting the entry"`
	MoodWord      string `json:"moodWord" jsonschema:"description=A single lowercase mood word"`
	MoodIntensity int    `json:"moodIntensity" jsonschema:"minimum=1,maximum=5"`
	JournalType   string `json:"journalType" jsonschema:"enum=week,enum=stress,enum=dream,enum=attendance,enum=stats"`
}

// Decode parses raw model output into a validated Result. Code fences and
// prose around the first JSON object are tolerated.
func Decode(raw string) (Result, error) {
	var resp response
	if err := decodeModelJSON(raw, &resp); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return validate(resp)
}

func decodeModelJSON(raw string, v any) error {
	s := stripFences(raw)
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return errors.New("no JSON object in output")
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("unmarshal extracted object: %w", err)
	}
	return nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func validate(resp response) (Result, error) {
	out := Result{
		Summary:       strings.TrimSpace(resp.Summary),
		MoodWord:      strings.ToLower(strings.TrimSpace(resp.MoodWord)),
		MoodIntensity: resp.MoodIntensity,
	}
	switch {
	case out.Summary == "":
		return Result{}, fmt.Errorf("%w: empty summary", ErrInvalidResponse)
	case out.MoodWord == "":
		return Result{}, fmt.Errorf("%w: empty mood word", ErrInvalidResponse)
	case utf8.RuneCountInString(out.MoodWord) > maxMoodWordRunes:
		return Result{}, fmt.Errorf("%w: mood word longer than %d runes", ErrInvalidResponse, maxMoodWordRunes)
	case out.MoodIntensity < 1 || out.MoodIntensity > 5:
		return Result{}, fmt.Errorf("%w: mood intensity %d outside [1,5]", ErrInvalidResponse, out.MoodIntensity)
	}
	if m, err := schema.ParseMode(resp.JournalType); err == nil {
		out.JournalType = m
	}
	return out, nil
}
