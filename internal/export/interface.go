package export

import (
	"fmt"
	"io"
	"time"

	"github.com/m365tools/graph-assistant/internal"
)

// Format identifies an export encoding
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat validates a format string, accepting common aliases
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, csv, html, md, txt)", s)
	}
}

// Options controls export output
type Options struct {
	// IncludeMetadata adds session context and message metadata to formats
	// that can carry them
	IncludeMetadata bool

	// Title overrides the document title in header-bearing formats
	Title string

	// Now supplies the export timestamp; defaults to time.Now
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return "Conversation Export"
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// New creates an exporter for the given format
func New(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatJSON:
		return &JSONExporter{opts: opts}, nil
	case FormatCSV:
		return &CSVExporter{opts: opts}, nil
	case FormatHTML:
		return &HTMLExporter{opts: opts}, nil
	case FormatMarkdown:
		return &MarkdownExporter{opts: opts}, nil
	case FormatText:
		return &TextExporter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
