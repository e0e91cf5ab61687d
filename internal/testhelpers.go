package internal

import "time"

// CreateTestSession creates a deterministic session for tests
func CreateTestSession(id string) *Session {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return &Session{
		ID:        id,
		StartTime: start,
		context:   map[string]interface{}{"workspace": "test"},
		messages: []Message{
			{
				ID:        id + "-m0",
				Timestamp: start,
				Role:      RoleSystem,
				Content:   "You are a helpful assistant for Microsoft 365 data.",
			},
			{
				ID:        id + "-m1",
				Timestamp: start.Add(time.Minute),
				Role:      RoleUser,
				Content:   "What meetings do I have today?",
			},
			{
				ID:        id + "-m2",
				Timestamp: start.Add(2 * time.Minute),
				Role:      RoleAssistant,
				Content:   "You have two meetings today:\n1. Weekly Team Sync\n2. Q3 Planning Review",
				Metadata:  map[string]interface{}{"source": "canned"},
			},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:        id,
		StartTime: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		context:   make(map[string]interface{}),
		messages:  messages,
	}
}
