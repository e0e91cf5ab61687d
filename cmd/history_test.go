package cmd

import (
	"strings"
	"testing"
)

func TestHistoryCommand_EmptyList(t *testing.T) {
	// An empty history is not an error, just a hint on stderr
	if _, err := executeCommand(t, "history", "list"); err != nil {
		t.Errorf("history list on empty store error = %v", err)
	}
}

func TestHistoryCommand_ShowMissing(t *testing.T) {
	_, err := executeCommand(t, "history", "show", "deadbeef")
	if err == nil {
		t.Fatal("showing a missing session succeeded")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}

func TestHistoryCommand_RemoveMissing(t *testing.T) {
	if _, err := executeCommand(t, "history", "rm", "deadbeef"); err == nil {
		t.Error("removing a missing session succeeded")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q", got)
	}
}
