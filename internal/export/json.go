package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// JSONExporter exports sessions as pretty-printed JSON
type JSONExporter struct {
	opts Options
}

type jsonDocument struct {
	ConversationID string                 `json:"conversation_id"`
	StartTime      time.Time              `json:"start_time"`
	ExportTime     time.Time              `json:"export_time"`
	MessageCount   int                    `json:"message_count"`
	Messages       []internal.Message     `json:"messages"`
	Context        map[string]interface{} `json:"context,omitempty"`
	ExportMetadata map[string]interface{} `json:"export_metadata,omitempty"`
}

// Export writes the session as a single JSON document
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	messages := session.Messages()
	doc := jsonDocument{
		ConversationID: session.ID,
		StartTime:      session.StartTime,
		ExportTime:     e.opts.now(),
		MessageCount:   len(messages),
		Messages:       messages,
	}
	if e.opts.IncludeMetadata {
		doc.Context = session.Context()
		doc.ExportMetadata = map[string]interface{}{
			"generator": "graph-assistant",
			"title":     e.opts.title(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
