//go:build integration

package hermes

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_PublishRendered(t *testing.T) {
	natsURL := skipWithoutNATS(t)
	logger := slog.Default()

	client, err := NewClient(natsURL, os.Getenv("NATS_TOKEN"), logger)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan RenderedEvent, 1)

	err = client.Subscribe(SubjectRendered, func(subject string, data []byte) {
		var ev RenderedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Errorf("unmarshal event: %v", err)
			return
		}
		received <- ev
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// Give subscription time to propagate
	time.Sleep(100 * time.Millisecond)

	sent := RenderedEvent{
		ID:             "0b6d0c0e-1a37-4c1e-9d4b-2b1e7f0f3a11",
		Mode:           "stress",
		VisualStandard: "B",
		InputStyle:     "story",
		ItemCount:      4,
		SummarySource:  "fallback",
		ProgramBytes:   2048,
		RenderedAt:     time.Now().UTC().Truncate(time.Second),
	}
	if err := client.PublishRendered(sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case ev := <-received:
		if ev != sent {
			t.Errorf("expected %+v, got %+v", sent, ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
