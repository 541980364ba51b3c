package schema

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// MaxNotesRunes bounds the Notes field.
const MaxNotesRunes = 280

// Schema is the data contract between extraction and rendering. Build it with
// Assemble; it is treated as immutable afterwards.
type Schema struct {
	Mode           Mode           `json:"mode"`
	VisualStandard VisualStandard `json:"visualStandard"`
	InputStyle     InputStyle     `json:"inputStyle"`
	Dimensions     Dimensions     `json:"dimensions"`
	Notes          string         `json:"notes"`
}

// Assemble wraps dims into a Schema. VisualStandard is always derived from
// mode; rawText is trimmed and truncated into Notes.
func Assemble(mode Mode, style InputStyle, dims Dimensions, rawText string) Schema {
	return Schema{
		Mode:           mode,
		VisualStandard: mode.VisualStandard(),
		InputStyle:     style,
		Dimensions:     dims,
		Notes:          Truncate(strings.TrimSpace(rawText), MaxNotesRunes),
	}
}

// Consistent reports whether the dimension payload has the shape the mode
// declares. A nil payload is consistent with any valid mode.
func (s Schema) Consistent() bool {
	if !s.Mode.Valid() {
		return false
	}
	return s.Dimensions == nil || s.Dimensions.Mode() == s.Mode
}

// UnmarshalJSON decodes a schema from untrusted input. Only input that is
// not a JSON object (or null) is an error. Fields of the wrong type decode
// to their zero value, and the dimension variant is chosen from the
// payload's own keys, never from the mode field.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return nil
	}
	*s = Schema{
		Mode:           Mode(strings.ToLower(strings.TrimSpace(stringField(fields["mode"])))),
		VisualStandard: VisualStandard(stringField(fields["visualStandard"])),
		InputStyle:     InputStyle(stringField(fields["inputStyle"])),
		Dimensions:     decodeDimensions(fields["dimensions"]),
		Notes:          stringField(fields["notes"]),
	}
	return nil
}

// stringField returns raw as a string, or "" when raw is absent or not a
// JSON string.
func stringField(raw json.RawMessage) string {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
