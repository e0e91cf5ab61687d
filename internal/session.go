package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MaxUserContentLength is the cap applied to user input at the shell boundary
const MaxUserContentLength = 4000

// Message is a single entry in a conversation. Immutable once appended.
type Message struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Role      Role                   `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session is an append-only log of role-tagged messages plus a key/value
// scratch context. A session always holds at least the seed system message.
type Session struct {
	ID        string
	StartTime time.Time

	messages []Message
	context  map[string]interface{}
}

// NewSession creates a session seeded with a system message carrying the
// active system prompt. Caller-supplied context keys are merged in.
func NewSession(systemPrompt string, initialContext map[string]interface{}) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		context:   make(map[string]interface{}),
	}
	for k, v := range initialContext {
		s.context[k] = v
	}
	s.appendMessage(RoleSystem, systemPrompt, nil)
	return s
}

// AddMessage appends a message to the session. Documented roles are system,
// user and assistant; other values are accepted as-is.
func (s *Session) AddMessage(role Role, content string, metadata map[string]interface{}) {
	s.appendMessage(role, content, metadata)
}

func (s *Session) appendMessage(role Role, content string, metadata map[string]interface{}) {
	var meta map[string]interface{}
	if len(metadata) > 0 {
		meta = make(map[string]interface{}, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Role:      role,
		Content:   content,
		Metadata:  meta,
	})
}

// Messages returns a snapshot of the message sequence in append order.
// Mutating the returned slice does not affect the session.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	for i := range out {
		if out[i].Metadata != nil {
			meta := make(map[string]interface{}, len(out[i].Metadata))
			for k, v := range out[i].Metadata {
				meta[k] = v
			}
			out[i].Metadata = meta
		}
	}
	return out
}

// MessageCount returns the number of messages including the system seed
func (s *Session) MessageCount() int {
	return len(s.messages)
}

// SetContext stores a context value, last write wins
func (s *Session) SetContext(key string, value interface{}) {
	s.context[key] = value
}

// ContextValue returns a context value and whether it was present
func (s *Session) ContextValue(key string) (interface{}, bool) {
	v, ok := s.context[key]
	return v, ok
}

// Context returns a snapshot of the scratch context
func (s *Session) Context() map[string]interface{} {
	out := make(map[string]interface{}, len(s.context))
	for k, v := range s.context {
		out[k] = v
	}
	return out
}

// sessionSnapshot is the on-disk shape of a saved session
type sessionSnapshot struct {
	ID        string                 `json:"id"`
	StartTime time.Time              `json:"start_time"`
	Messages  []Message              `json:"messages"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Save writes the session snapshot to path as pretty-printed JSON
func (s *Session) Save(path string) error {
	snap := sessionSnapshot{
		ID:        s.ID,
		StartTime: s.StartTime,
		Messages:  s.messages,
		Context:   s.context,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// LoadSession reconstructs a session from a snapshot written by Save,
// preserving the original id and start time. A missing or corrupt file
// yields a LoadError and no session.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if snap.ID == "" || len(snap.Messages) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("snapshot missing id or messages")}
	}
	s := &Session{
		ID:        snap.ID,
		StartTime: snap.StartTime,
		messages:  snap.Messages,
		context:   snap.Context,
	}
	if s.context == nil {
		s.context = make(map[string]interface{})
	}
	return s, nil
}

// TruncateUserInput clamps user input to MaxUserContentLength runes
func TruncateUserInput(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxUserContentLength {
		return content
	}
	return string(runes[:MaxUserContentLength])
}
