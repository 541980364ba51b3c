package schema

import (
	"errors"
	"strings"
)

// ErrUnknownMode is returned when a mode string names none of the five modes.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects the dimension shape and the renderer for a submission.
type Mode string

const (
	ModeWeek       Mode = "week"
	ModeStress     Mode = "stress"
	ModeDream      Mode = "dream"
	ModeAttendance Mode = "attendance"
	ModeStats      Mode = "stats"
)

// ModeAuto is the inbound value asking the resolver to pick a mode.
const ModeAuto = "auto"

// Modes lists every mode in visual-standard order.
var Modes = []Mode{ModeWeek, ModeStress, ModeDream, ModeAttendance, ModeStats}

// VisualStandard is the renderer tag derived 1:1 from a Mode.
type VisualStandard string

const (
	StandardA VisualStandard = "A"
	StandardB VisualStandard = "B"
	StandardC VisualStandard = "C"
	StandardD VisualStandard = "D"
	StandardE VisualStandard = "E"
)

var visualStandards = map[Mode]VisualStandard{
	ModeWeek:       StandardA,
	ModeStress:     StandardB,
	ModeDream:      StandardC,
	ModeAttendance: StandardD,
	ModeStats:      StandardE,
}

// Valid reports whether m is one of the five modes.
func (m Mode) Valid() bool {
	_, ok := visualStandards[m]
	return ok
}

// VisualStandard returns the fixed tag for m, or "" when m is not valid.
func (m Mode) VisualStandard() VisualStandard {
	return visualStandards[m]
}

// ParseMode normalises s and returns the matching mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrUnknownMode
	}
	return m, nil
}

// ModeForStandard maps a visual-standard tag back to its mode.
func ModeForStandard(vs VisualStandard) (Mode, bool) {
	want := VisualStandard(strings.ToUpper(strings.TrimSpace(string(vs))))
	for m, tag := range visualStandards {
		if tag == want {
			return m, true
		}
	}
	return "", false
}

// InputStyle records how the user supplied their data.
type InputStyle string

const (
	InputStory           InputStyle = "story"
	InputTableTimeSeries InputStyle = "table_time_series"
)

// ParseInputStyle returns the style named by s. An empty or unknown value
// yields table_time_series when a table was supplied and story otherwise.
func ParseInputStyle(s string, hasTable bool) InputStyle {
	switch InputStyle(strings.ToLower(strings.TrimSpace(s))) {
	case InputStory:
		return InputStory
	case InputTableTimeSeries:
		return InputTableTimeSeries
	}
	if hasTable {
		return InputTableTimeSeries
	}
	return InputStory
}
