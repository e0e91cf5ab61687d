package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m365tools/graph-assistant/internal"
)

// ValidatePath rejects suspicious output paths before anything is written:
// parent-directory segments, double slashes, angle brackets and pipes. The
// target directory must already exist.
func ValidatePath(path string) error {
	if path == "" {
		return &internal.PathError{Path: path, Reason: "path is empty"}
	}
	if strings.Contains(path, "..") {
		return &internal.PathError{Path: path, Reason: "parent directory segments are not allowed"}
	}
	if strings.Contains(path, "//") {
		return &internal.PathError{Path: path, Reason: "double slashes are not allowed"}
	}
	if strings.ContainsAny(path, "<>|") {
		return &internal.PathError{Path: path, Reason: "path contains invalid characters"}
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return &internal.PathError{Path: path, Reason: fmt.Sprintf("target directory does not exist: %s", dir)}
	}
	if !info.IsDir() {
		return &internal.PathError{Path: path, Reason: fmt.Sprintf("target is not a directory: %s", dir)}
	}
	return nil
}

// WriteFile exports the session to path in the given format. The path is
// validated first and the document is rendered fully in memory, so a failed
// export never leaves a partial file behind. The resulting file size is
// logged for observability.
func WriteFile(session *internal.Session, path string, format Format, opts Options, logger *internal.Logger) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	exporter, err := New(format, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		return &internal.ExportError{Format: string(format), Path: path, Err: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &internal.ExportError{Format: string(format), Path: path, Err: err}
	}

	logger.Infof("export", "wrote %s (%d bytes)", path, buf.Len())
	return nil
}
