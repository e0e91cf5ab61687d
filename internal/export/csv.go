package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// CSVExporter exports sessions as one row per message
type CSVExporter struct {
	opts Options
}

// Export writes a header row followed by one row per message. Newlines in
// content are collapsed to spaces so every message stays on one row.
func (e *CSVExporter) Export(session *internal.Session, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "role", "content"}
	if e.opts.IncludeMetadata {
		header = append(header, "metadata")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, msg := range session.Messages() {
		row := []string{
			msg.Timestamp.Format(time.RFC3339),
			string(msg.Role),
			collapseNewlines(msg.Content),
		}
		if e.opts.IncludeMetadata {
			row = append(row, compactMetadata(msg.Metadata))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}

func collapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func compactMetadata(meta map[string]interface{}) string {
	if len(meta) == 0 {
		return ""
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(data)
}
