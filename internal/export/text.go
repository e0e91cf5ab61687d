package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// TextExporter exports sessions as plain text
type TextExporter struct {
	opts Options
}

const textRuleWidth = 72

// Export writes a fixed-width header block followed by each message
func (e *TextExporter) Export(session *internal.Session, w io.Writer) error {
	messages := session.Messages()
	heavyRule := strings.Repeat("=", textRuleWidth)
	lightRule := strings.Repeat("-", textRuleWidth)

	_, _ = fmt.Fprintln(w, heavyRule)
	_, _ = fmt.Fprintf(w, " %s\n", e.opts.title())
	_, _ = fmt.Fprintf(w, " Conversation: %s\n", session.ID)
	_, _ = fmt.Fprintf(w, " Started:      %s\n", session.StartTime.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, " Messages:     %d\n", len(messages))
	_, _ = fmt.Fprintf(w, " Exported:     %s\n", e.opts.now().Format(time.RFC3339))
	_, _ = fmt.Fprintln(w, heavyRule)
	_, _ = fmt.Fprintln(w)

	for _, msg := range messages {
		_, _ = fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(string(msg.Role)), msg.Timestamp.Format(time.RFC3339))
		_, _ = fmt.Fprintln(w, msg.Content)
		_, _ = fmt.Fprintln(w, lightRule)
	}

	return nil
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
