package export

import (
	"html/template"
	"io"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// HTMLExporter exports sessions as a self-contained styled document.
// Rendering goes through html/template so message content is always escaped.
type HTMLExporter struct {
	opts Options
}

var htmlTemplate = template.Must(template.New("conversation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Segoe UI", sans-serif; margin: 2rem auto; max-width: 56rem; color: #1b1b1b; }
  header { border-bottom: 2px solid #0078d4; padding-bottom: 1rem; margin-bottom: 1.5rem; }
  header h1 { margin: 0 0 0.5rem; color: #0078d4; }
  header dl { display: grid; grid-template-columns: 10rem 1fr; gap: 0.25rem; margin: 0; font-size: 0.9rem; }
  header dt { color: #666; }
  .message { border-left: 4px solid #ccc; padding: 0.5rem 1rem; margin-bottom: 1rem; background: #fafafa; }
  .message.system { border-color: #8a8886; }
  .message.user { border-color: #0078d4; }
  .message.assistant { border-color: #7719aa; }
  .message .role { font-weight: 600; text-transform: uppercase; font-size: 0.8rem; }
  .message.system .role { color: #8a8886; }
  .message.user .role { color: #0078d4; }
  .message.assistant .role { color: #7719aa; }
  .message .time { color: #999; font-size: 0.8rem; margin-left: 0.5rem; }
  .message .content { white-space: pre-wrap; margin-top: 0.5rem; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<dl>
<dt>Conversation</dt><dd>{{.ConversationID}}</dd>
<dt>Started</dt><dd>{{.StartTime}}</dd>
<dt>Messages</dt><dd>{{.MessageCount}}</dd>
<dt>Exported</dt><dd>{{.ExportTime}}</dd>
</dl>
</header>
{{range .Messages}}<div class="message {{.Role}}">
<span class="role">{{.Role}}</span><span class="time">{{.Time}}</span>
<div class="content">{{.Content}}</div>
</div>
{{end}}</body>
</html>
`))

type htmlDocument struct {
	Title          string
	ConversationID string
	StartTime      string
	ExportTime     string
	MessageCount   int
	Messages       []htmlMessage
}

type htmlMessage struct {
	Role    string
	Time    string
	Content string
}

// Export renders the session through the document template
func (e *HTMLExporter) Export(session *internal.Session, w io.Writer) error {
	messages := session.Messages()
	doc := htmlDocument{
		Title:          e.opts.title(),
		ConversationID: session.ID,
		StartTime:      session.StartTime.Format(time.RFC3339),
		ExportTime:     e.opts.now().Format(time.RFC3339),
		MessageCount:   len(messages),
	}
	for _, msg := range messages {
		doc.Messages = append(doc.Messages, htmlMessage{
			Role:    string(msg.Role),
			Time:    msg.Timestamp.Format(time.RFC3339),
			Content: msg.Content,
		})
	}
	return htmlTemplate.Execute(w, doc)
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
