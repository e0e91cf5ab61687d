package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct {
	opts Options
}

// Export writes a heading block followed by one section per message
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	messages := session.Messages()

	_, _ = fmt.Fprintf(w, "# %s\n\n", e.opts.title())
	_, _ = fmt.Fprintf(w, "**Conversation:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Started:** %s  \n", session.StartTime.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", len(messages))
	_, _ = fmt.Fprintf(w, "**Exported:** %s\n\n", e.opts.now().Format(time.RFC3339))

	if e.opts.IncludeMetadata {
		if context := session.Context(); len(context) > 0 {
			_, _ = fmt.Fprintf(w, "**Context:**\n\n")
			for _, key := range sortedKeys(context) {
				_, _ = fmt.Fprintf(w, "- `%s`: %v\n", key, context[key])
			}
			_, _ = fmt.Fprintf(w, "\n")
		}
	}

	for _, msg := range messages {
		_, _ = fmt.Fprintf(w, "## %s\n\n", strings.ToUpper(string(msg.Role)))
		_, _ = fmt.Fprintf(w, "*%s*\n\n", msg.Timestamp.Format(time.RFC3339))
		_, _ = fmt.Fprintf(w, "%s\n\n", msg.Content)
		_, _ = fmt.Fprintf(w, "---\n\n")
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
