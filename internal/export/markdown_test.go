package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m365tools/graph-assistant/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("sess-md")
	exporter := &MarkdownExporter{opts: Options{Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "# Conversation Export\n") {
		t.Errorf("missing default title heading:\n%s", out)
	}
	for _, want := range []string{
		"**Conversation:** sess-md",
		"**Messages:** 3",
		"**Exported:** 2025-01-15T12:00:00Z",
		"## SYSTEM",
		"## USER",
		"## ASSISTANT",
		"What meetings do I have today?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "## SYSTEM") > strings.Index(out, "## USER") {
		t.Error("messages out of order")
	}
	if strings.Contains(out, "**Context:**") {
		t.Error("context rendered without IncludeMetadata")
	}
	if got := strings.Count(out, "---"); got != 3 {
		t.Errorf("separator count = %d, want one per message", got)
	}
}

func TestMarkdownExporter_ContextAndTitle(t *testing.T) {
	session := internal.CreateTestSession("sess-md")
	exporter := &MarkdownExporter{opts: Options{IncludeMetadata: true, Title: "Standup Notes", Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "# Standup Notes\n") {
		t.Errorf("title override not applied:\n%s", out)
	}
	if !strings.Contains(out, "**Context:**") || !strings.Contains(out, "- `workspace`: test") {
		t.Errorf("context block missing:\n%s", out)
	}
}

func TestMarkdownExporter_NewSession(t *testing.T) {
	session := internal.NewSession("You are helpful.", nil)
	exporter := &MarkdownExporter{opts: Options{Now: fixedNow}}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	// A fresh session carries only its seeded system message
	if got := strings.Count(out, "## "); got != 1 {
		t.Errorf("message sections = %d, want 1", got)
	}
	if !strings.Contains(out, "## SYSTEM") {
		t.Errorf("missing system section:\n%s", out)
	}
}
