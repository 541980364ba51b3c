package hermes

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRenderedEventWireNames(t *testing.T) {
	ev := RenderedEvent{
		ID:             "id-1",
		Mode:           "week",
		VisualStandard: "A",
		InputStyle:     "story",
		ItemCount:      7,
		SummarySource:  "gemini",
		ProgramBytes:   10,
		RenderedAt:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "mode", "visualStandard", "inputStyle", "itemCount", "summarySource", "programBytes", "renderedAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, b)
		}
	}
	if len(raw) != 8 {
		t.Errorf("expected 8 keys, got %d: %s", len(raw), b)
	}
	if raw["renderedAt"] != "2025-03-01T09:00:00Z" {
		t.Errorf("unexpected renderedAt %v", raw["renderedAt"])
	}
}
