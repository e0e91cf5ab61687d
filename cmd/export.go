package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/m365tools/graph-assistant/internal"
	"github.com/m365tools/graph-assistant/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat          string
	exportOut             string
	exportTitle           string
	exportIncludeMetadata bool
	exportClipboard       bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a saved conversation to file",
	Long: `Export a saved conversation to one of the supported formats
(json, csv, html, md, txt).

Use 'graph-assistant history list' to see saved conversation IDs. The output
file is named session_<id>.<ext> inside the output directory. With
--clipboard the rendered document is also copied to the system clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		err := runExport(args[0])
		recordUsage("export", started, err)
		return err
	},
}

func runExport(sessionID string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	dbPath, err := appConfig.HistoryDBPath()
	if err != nil {
		return err
	}
	store, err := internal.OpenHistory(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entry, err := store.Get(sessionID)
	if err != nil {
		return fmt.Errorf("%w (use 'graph-assistant history list' to see saved conversations)", err)
	}

	session, err := internal.LoadSession(entry.SnapshotPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	opts := export.Options{
		IncludeMetadata: exportIncludeMetadata,
		Title:           exportTitle,
	}
	exporter, err := export.New(format, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(exportOut, fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension()))
	if err := export.WriteFile(session, path, format, opts, appLogger); err != nil {
		return err
	}

	if exportClipboard {
		var buf bytes.Buffer
		if err := exporter.Export(session, &buf); err != nil {
			return &internal.ExportError{Format: string(format), Path: "clipboard", Err: err}
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			internal.PrintWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		} else {
			internal.PrintSuccess("Copied to clipboard")
		}
	}

	internal.PrintSuccess(fmt.Sprintf("Exported conversation %s to %s", session.ID, path))
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, csv, html, md, txt)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "Document title for header-bearing formats")
	exportCmd.Flags().BoolVar(&exportIncludeMetadata, "include-metadata", false, "Include context and message metadata")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Also copy the rendered document to the clipboard")
}
