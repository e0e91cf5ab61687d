package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Responder produces assistant replies. When a chat endpoint is configured
// the conversation is passed through to it; otherwise, and whenever the
// endpoint fails, a keyword-matched canned reply is used. There is no model
// running here.
type Responder struct {
	endpoint string
	logger   *Logger
	client   *http.Client
}

// NewResponder creates a responder; endpoint may be empty
func NewResponder(endpoint string, logger *Logger) *Responder {
	return &Responder{
		endpoint: endpoint,
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Reply returns the assistant response to the latest user input, given the
// full session history
func (r *Responder) Reply(ctx context.Context, session *Session, input string) string {
	if r.endpoint != "" {
		reply, err := r.passThrough(ctx, session)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil {
			r.logger.Warnf("assistant", "chat endpoint failed, using canned reply: %v", err)
		}
	}
	return cannedReply(input)
}

func (r *Responder) passThrough(ctx context.Context, session *Session) (string, error) {
	req := chatRequest{}
	for _, msg := range session.Messages() {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// cannedReply matches keywords in the user input against a fixed set of
// responses
func cannedReply(input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "meeting") || strings.Contains(lower, "calendar"):
		return "I can summarize your meetings. Try `/insights meetings` to see what's on your calendar, " +
			"or ask me about a specific meeting."
	case strings.Contains(lower, "email") || strings.Contains(lower, "mail") || strings.Contains(lower, "inbox"):
		return "I can go through your recent email. Try `/insights emails` for a summary of what arrived " +
			"in the selected time range."
	case strings.Contains(lower, "document") || strings.Contains(lower, "file") || strings.Contains(lower, "onedrive"):
		return "I can list documents you've worked on recently. Try `/insights documents` to see them."
	case strings.Contains(lower, "insight") || strings.Contains(lower, "summary") || strings.Contains(lower, "overview"):
		return "Try `/insights all` for a combined view of meetings, emails and documents, or " +
			"`/insights recent` for just the latest activity."
	case strings.Contains(lower, "save"):
		return "Use `/save` to snapshot this conversation. You can list saved conversations later with " +
			"`graph-assistant history list`."
	case strings.Contains(lower, "export"):
		return "Use `/export <format> <path>` to write this conversation to a file. " +
			"Supported formats: json, csv, html, md, txt."
	case strings.Contains(lower, "help") || strings.Contains(lower, "what can you"):
		return "I'm a conversational front end for your Microsoft 365 data. Commands: /insights, /save, " +
			"/export, /context, /quit. Ask about meetings, emails or documents."
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi ") || lower == "hi":
		return "Hello! Ask me about your meetings, emails or documents, or type `help` for commands."
	case strings.Contains(lower, "thank"):
		return "You're welcome!"
	default:
		return "I'm not sure about that one. I can help with meetings, emails and documents — " +
			"type `help` to see what I can do."
	}
}
