package cmd

import (
	"strings"
	"testing"
)

func TestInsightsCommand_InvalidCategory(t *testing.T) {
	_, err := executeCommand(t, "insights", "everything")
	if err == nil {
		t.Fatal("invalid category accepted")
	}
	if !strings.Contains(err.Error(), "unknown category") {
		t.Errorf("error = %v", err)
	}
}

func TestInsightsCommand_InvalidRange(t *testing.T) {
	_, err := executeCommand(t, "insights", "meetings", "--range", "year")
	if err == nil {
		t.Fatal("invalid range accepted")
	}
	if !strings.Contains(err.Error(), "unknown time range") {
		t.Errorf("error = %v", err)
	}
}

func TestInsightsCommand_RequiresCategory(t *testing.T) {
	if _, err := executeCommand(t, "insights"); err == nil {
		t.Error("insights without a category accepted")
	}
}
