package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSession_SeedsSystemMessage(t *testing.T) {
	session := NewSession("You are a test assistant.", map[string]interface{}{"workspace": "acme"})

	messages := session.Messages()
	if len(messages) != 1 {
		t.Fatalf("Messages() length = %d, want 1", len(messages))
	}
	if messages[0].Role != RoleSystem {
		t.Errorf("seed role = %q, want %q", messages[0].Role, RoleSystem)
	}
	if messages[0].Content != "You are a test assistant." {
		t.Errorf("seed content = %q", messages[0].Content)
	}
	if session.ID == "" {
		t.Error("session ID is empty")
	}
	if v, ok := session.ContextValue("workspace"); !ok || v != "acme" {
		t.Errorf("ContextValue(workspace) = %v, %v", v, ok)
	}
}

func TestAddMessage_AppendOnly(t *testing.T) {
	session := NewSession("seed", nil)

	session.AddMessage(RoleUser, "first", nil)
	snapshot := session.Messages()
	session.AddMessage(RoleAssistant, "second", map[string]interface{}{"source": "canned"})
	session.AddMessage(RoleUser, "third", nil)

	messages := session.Messages()
	if got, want := len(messages), 4; got != want {
		t.Fatalf("Messages() length = %d, want %d", got, want)
	}

	// Prior entries are never altered by later appends
	for i, msg := range snapshot {
		if messages[i].ID != msg.ID || messages[i].Content != msg.Content {
			t.Errorf("message %d changed after later appends", i)
		}
	}

	// IDs are unique within the session
	seen := make(map[string]bool)
	for _, msg := range messages {
		if seen[msg.ID] {
			t.Errorf("duplicate message id %s", msg.ID)
		}
		seen[msg.ID] = true
	}

	order := []Role{RoleSystem, RoleUser, RoleAssistant, RoleUser}
	for i, role := range order {
		if messages[i].Role != role {
			t.Errorf("message %d role = %q, want %q", i, messages[i].Role, role)
		}
	}
}

func TestMessages_ReturnsSnapshot(t *testing.T) {
	session := NewSession("seed", nil)
	session.AddMessage(RoleUser, "hello", map[string]interface{}{"key": "original"})

	snapshot := session.Messages()
	snapshot[0].Content = "mutated"
	snapshot[1].Metadata["key"] = "mutated"

	fresh := session.Messages()
	if fresh[0].Content != "seed" {
		t.Error("mutating snapshot content affected internal state")
	}
	if fresh[1].Metadata["key"] != "original" {
		t.Error("mutating snapshot metadata affected internal state")
	}
}

func TestContext_LastWriteWins(t *testing.T) {
	session := NewSession("seed", nil)

	session.SetContext("mode", "work")
	session.SetContext("mode", "focus")

	if v, ok := session.ContextValue("mode"); !ok || v != "focus" {
		t.Errorf("ContextValue(mode) = %v, %v, want focus", v, ok)
	}
	if _, ok := session.ContextValue("absent"); ok {
		t.Error("ContextValue(absent) reported present")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	session := NewSession("seed prompt", map[string]interface{}{"workspace": "acme"})
	session.AddMessage(RoleUser, "What meetings do I have?", nil)
	session.AddMessage(RoleAssistant, "Two meetings today.", map[string]interface{}{"source": "canned"})
	session.SetContext("topic", "meetings")

	if err := session.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}

	if loaded.ID != session.ID {
		t.Errorf("loaded ID = %s, want %s", loaded.ID, session.ID)
	}
	if !loaded.StartTime.Equal(session.StartTime) {
		t.Errorf("loaded StartTime = %v, want %v", loaded.StartTime, session.StartTime)
	}

	want := session.Messages()
	got := loaded.Messages()
	if len(got) != len(want) {
		t.Fatalf("loaded %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Role != want[i].Role || got[i].Content != want[i].Content {
			t.Errorf("message %d differs after round trip", i)
		}
	}

	if v, ok := loaded.ContextValue("topic"); !ok || v != "meetings" {
		t.Errorf("loaded context topic = %v, %v", v, ok)
	}
}

func TestLoadSession_Missing(t *testing.T) {
	session, err := LoadSession(filepath.Join(t.TempDir(), "nope.json"))
	if session != nil {
		t.Error("LoadSession() returned a session for a missing file")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("LoadSession() error = %T, want *LoadError", err)
	}
}

func TestLoadSession_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	session, err := LoadSession(path)
	if session != nil {
		t.Error("LoadSession() returned a session for a corrupt file")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("LoadSession() error = %T, want *LoadError", err)
	}
}

func TestTruncateUserInput(t *testing.T) {
	short := "hello"
	if got := TruncateUserInput(short); got != short {
		t.Errorf("TruncateUserInput(short) = %q", got)
	}

	long := ""
	for i := 0; i < MaxUserContentLength+100; i++ {
		long += "x"
	}
	got := TruncateUserInput(long)
	if len([]rune(got)) != MaxUserContentLength {
		t.Errorf("TruncateUserInput(long) length = %d, want %d", len([]rune(got)), MaxUserContentLength)
	}
}
