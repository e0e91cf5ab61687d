package cmd

import (
	"strings"
	"testing"

	"github.com/m365tools/graph-assistant/internal"
)

func TestSessionTitle(t *testing.T) {
	session := internal.CreateTestSession("sess-1")
	if got := sessionTitle(session); got != "What meetings do I have today?" {
		t.Errorf("sessionTitle() = %q", got)
	}

	long := strings.Repeat("a", 100)
	session.AddMessage(internal.RoleUser, long, nil)
	// First user message still wins
	if got := sessionTitle(session); got != "What meetings do I have today?" {
		t.Errorf("sessionTitle() = %q", got)
	}

	longOnly := internal.CreateTestSessionWithMessages("sess-2", []internal.Message{
		{Role: internal.RoleUser, Content: long},
	})
	got := sessionTitle(longOnly)
	if len([]rune(got)) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("long title not trimmed: %q (%d runes)", got, len([]rune(got)))
	}

	empty := internal.CreateTestSessionWithMessages("sess-3", nil)
	if got := sessionTitle(empty); got != "Untitled conversation" {
		t.Errorf("sessionTitle() = %q", got)
	}
}

func TestSummarizeInsights(t *testing.T) {
	if got := summarizeInsights(nil); !strings.Contains(got, "didn't find anything") {
		t.Errorf("summarizeInsights(nil) = %q", got)
	}

	records := []internal.InsightRecord{
		{Type: internal.InsightMeeting, Title: "Standup"},
		{Type: internal.InsightEmail, Title: "RE: Deployment"},
	}
	got := summarizeInsights(records)
	if !strings.Contains(got, "2 items") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(got, "[Meeting] Standup") || !strings.Contains(got, "[Email] RE: Deployment") {
		t.Errorf("summary = %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("summary has trailing newline")
	}
}

func TestRunSlashCommand(t *testing.T) {
	session := internal.CreateTestSession("sess-1")

	quit, err := runSlashCommand(session, nil, "/quit")
	if !quit || err != nil {
		t.Errorf("/quit = (%v, %v)", quit, err)
	}
	quit, err = runSlashCommand(session, nil, "/exit")
	if !quit || err != nil {
		t.Errorf("/exit = (%v, %v)", quit, err)
	}

	if _, err := runSlashCommand(session, nil, "/bogus"); err == nil {
		t.Error("unknown slash command accepted")
	}
	if _, err := runSlashCommand(session, nil, "/export json"); err == nil {
		t.Error("/export without a path accepted")
	}
	if _, err := runSlashCommand(session, nil, "/export pdf /tmp/out"); err == nil {
		t.Error("/export with a bad format accepted")
	}

	if _, err := runSlashCommand(session, nil, "/context project contoso"); err != nil {
		t.Errorf("/context set error = %v", err)
	}
	got, ok := session.ContextValue("project")
	if !ok || got != "contoso" {
		t.Errorf("context project = %v (present=%v)", got, ok)
	}
}
