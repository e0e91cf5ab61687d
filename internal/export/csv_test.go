package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/m365tools/graph-assistant/internal"
)

func TestCSVExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("sess-csv")
	exporter := &CSVExporter{opts: Options{Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3 messages", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "timestamp,role,content" {
		t.Errorf("header = %q", got)
	}
	if rows[1][1] != "system" || rows[2][1] != "user" || rows[3][1] != "assistant" {
		t.Errorf("roles = %q %q %q", rows[1][1], rows[2][1], rows[3][1])
	}
	// Multi-line assistant content must collapse onto one row
	if strings.Contains(rows[3][2], "\n") {
		t.Errorf("content still contains newlines: %q", rows[3][2])
	}
	if !strings.Contains(rows[3][2], "Weekly Team Sync") {
		t.Errorf("content = %q", rows[3][2])
	}
}

func TestCSVExporter_MetadataColumn(t *testing.T) {
	session := internal.CreateTestSession("sess-csv")
	exporter := &CSVExporter{opts: Options{IncludeMetadata: true, Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows[0]) != 4 || rows[0][3] != "metadata" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "" {
		t.Errorf("system metadata = %q, want empty", rows[1][3])
	}
	if !strings.Contains(rows[3][3], `"source":"canned"`) {
		t.Errorf("assistant metadata = %q", rows[3][3])
	}
}
