package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerToRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "warn")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info logged at warn level: %s", buf.String())
	}

	logger.Warn("kept", "booking_id", "b1")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "kept" || entry["booking_id"] != "b1" {
		t.Errorf("unexpected entry %v", entry)
	}
}
