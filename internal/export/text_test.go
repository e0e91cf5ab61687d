package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m365tools/graph-assistant/internal"
)

func TestTextExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("sess-txt")
	exporter := &TextExporter{opts: Options{Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	heavyRule := strings.Repeat("=", 72)
	if strings.Count(out, heavyRule) != 2 {
		t.Error("header block not framed by heavy rules")
	}
	for _, want := range []string{
		" Conversation: sess-txt",
		" Messages:     3",
		"[SYSTEM] 2025-01-15T09:00:00Z",
		"[USER] 2025-01-15T09:01:00Z",
		"[ASSISTANT] 2025-01-15T09:02:00Z",
		"What meetings do I have today?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	lightRule := strings.Repeat("-", 72)
	if got := strings.Count(out, lightRule); got != 3 {
		t.Errorf("light rule count = %d, want one per message", got)
	}
}
