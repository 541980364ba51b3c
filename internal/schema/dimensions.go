package schema

import "encoding/json"

// Dimensions is the mode-specific payload of a Schema. Exactly one concrete
// type exists per Mode.
type Dimensions interface {
	// Mode is the mode whose shape this payload has.
	Mode() Mode
	// Len is the number of records in the payload's collection.
	Len() int
}

// DayNames is the fixed calendar order of a week payload.
var DayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayFeature describes one day of a week.
type DayFeature struct {
	Name            string  `json:"name"`
	Mood            int     `json:"mood"`
	Energy          int     `json:"energy"`
	ConnectionScore float64 `json:"connection_score"`
	Label           string  `json:"label"`
}

// Week holds exactly seven days, Monday first.
type Week struct {
	Days []DayFeature `json:"days"`
}

func (Week) Mode() Mode  { return ModeWeek }
func (w Week) Len() int { return len(w.Days) }

// StressPoint is one sample on a stress timeline.
type StressPoint struct {
	Label    string  `json:"label"`
	Position float64 `json:"position"`
	Stress   int     `json:"stress"`
	Emotion  string  `json:"emotion"`
	BodyNote string  `json:"body_note"`
}

// Stress is a timeline ordered by ascending Position.
type Stress struct {
	Timeline []StressPoint `json:"timeline"`
}

func (Stress) Mode() Mode  { return ModeStress }
func (s Stress) Len() int { return len(s.Timeline) }

// DreamScene is one scene of a dream in narrative order.
type DreamScene struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
	ColorHex  string `json:"colorHex"`
	Orbit     int    `json:"orbit"`
	HasGuide  bool   `json:"hasGuide"`
}

// Dream is a sequence of scenes.
type Dream struct {
	Scenes []DreamScene `json:"scenes"`
}

func (Dream) Mode() Mode  { return ModeDream }
func (d Dream) Len() int { return len(d.Scenes) }

// MaxAttendanceColumns caps the width of an attendance row.
const MaxAttendanceColumns = 14

// AttendanceRow is one labelled row of presence flags (0 or 1).
type AttendanceRow struct {
	Label  string `json:"label"`
	Values []int  `json:"values"`
}

// Attendance is a grid of rows.
type Attendance struct {
	Rows []AttendanceRow `json:"rows"`
}

func (Attendance) Mode() Mode  { return ModeAttendance }
func (a Attendance) Len() int { return len(a.Rows) }

// MaxColumns returns the widest row's length.
func (a Attendance) MaxColumns() int {
	n := 0
	for _, r := range a.Rows {
		if len(r.Values) > n {
			n = len(r.Values)
		}
	}
	return n
}

// Category is one named non-negative quantity.
type Category struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Stats is a list of categories.
type Stats struct {
	Categories []Category `json:"categories"`
}

func (Stats) Mode() Mode  { return ModeStats }
func (s Stats) Len() int { return len(s.Categories) }

// decodeDimensions picks the variant by the collection key present in raw,
// independent of the declared mode, so a corrupted schema keeps its true shape.
// A payload of the wrong JSON type anywhere inside decodes to nil, which
// renders as the placeholder scene.
func decodeDimensions(raw json.RawMessage) Dimensions {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || keys == nil {
		return nil
	}
	var (
		dims Dimensions
		err  error
	)
	switch {
	case keys["days"] != nil:
		var w Week
		err = json.Unmarshal(raw, &w)
		dims = w
	case keys["timeline"] != nil:
		var s Stress
		err = json.Unmarshal(raw, &s)
		dims = s
	case keys["scenes"] != nil:
		var d Dream
		err = json.Unmarshal(raw, &d)
		dims = d
	case keys["rows"] != nil:
		var a Attendance
		err = json.Unmarshal(raw, &a)
		dims = a
	case keys["categories"] != nil:
		var s Stats
		err = json.Unmarshal(raw, &s)
		dims = s
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return dims
}
