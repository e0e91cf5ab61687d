package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/m365tools/graph-assistant/internal"
	"github.com/m365tools/graph-assistant/internal/export"
	"github.com/spf13/cobra"
)

var (
	historyPurge bool
	historyCopy  bool
)

var (
	historyHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	historyTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	historyIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	historyCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	historyDateStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	showRoleUserStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	showRoleAssistantStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135"))

	showRoleSystemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("243"))

	showTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	showContentStyle = lipgloss.NewStyle().
				PaddingLeft(2)
)

// historyCmd groups the conversation history subcommands
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved conversations",
	Long:  `List, show and remove conversations saved from the chat shell.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			internal.PrintWarning("No saved conversations (use /save inside 'graph-assistant chat')")
			return nil
		}

		fmt.Println(historyHeaderStyle.Render(fmt.Sprintf("Saved conversations (%d)", len(entries))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				historyIDStyle.Render(shortID(entry.SessionID)),
				historyTitleStyle.Render(entry.Title),
				historyCountStyle.Render(fmt.Sprintf("%d msgs", entry.MessageCount)),
				historyDateStyle.Render(entry.SavedAt.Local().Format("2006-01-02 15:04")),
			)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a saved conversation",
	Long:  `Print a saved conversation. With --copy the plain-text rendering is also copied to the clipboard.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entry, err := resolveEntry(store, args[0])
		if err != nil {
			return err
		}
		session, err := internal.LoadSession(entry.SnapshotPath)
		if err != nil {
			return err
		}

		fmt.Println(historyHeaderStyle.Render(entry.Title))
		fmt.Println(historyDateStyle.Render(fmt.Sprintf("%s · started %s · %d messages",
			session.ID, session.StartTime.Local().Format("2006-01-02 15:04"), session.MessageCount())))
		fmt.Println()

		for _, msg := range session.Messages() {
			var roleStyle lipgloss.Style
			switch msg.Role {
			case internal.RoleUser:
				roleStyle = showRoleUserStyle
			case internal.RoleAssistant:
				roleStyle = showRoleAssistantStyle
			default:
				roleStyle = showRoleSystemStyle
			}
			fmt.Printf("%s %s\n", roleStyle.Render(strings.ToUpper(string(msg.Role))),
				showTimeStyle.Render(msg.Timestamp.Local().Format("15:04:05")))
			fmt.Println(showContentStyle.Render(msg.Content))
			fmt.Println()
		}

		if historyCopy {
			var buf bytes.Buffer
			exporter, err := export.New(export.FormatText, export.Options{Title: entry.Title})
			if err != nil {
				return err
			}
			if err := exporter.Export(session, &buf); err != nil {
				return err
			}
			if err := clipboard.WriteAll(buf.String()); err != nil {
				internal.PrintWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
			} else {
				internal.PrintSuccess("Copied to clipboard")
			}
		}
		return nil
	},
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <session-id>",
	Short: "Remove a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entry, err := resolveEntry(store, args[0])
		if err != nil {
			return err
		}
		if err := store.Remove(entry.SessionID); err != nil {
			return err
		}
		if historyPurge {
			if err := os.Remove(entry.SnapshotPath); err != nil && !os.IsNotExist(err) {
				internal.PrintWarning(fmt.Sprintf("Failed to delete snapshot: %v", err))
			}
		}
		internal.PrintSuccess(fmt.Sprintf("Removed conversation %s", entry.SessionID))
		return nil
	},
}

func openHistoryStore() (*internal.HistoryStore, error) {
	dbPath, err := appConfig.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return internal.OpenHistory(dbPath)
}

// resolveEntry accepts a full session id or an unambiguous prefix
func resolveEntry(store *internal.HistoryStore, id string) (*internal.HistoryEntry, error) {
	if entry, err := store.Get(id); err == nil {
		return entry, nil
	}
	entries, err := store.List()
	if err != nil {
		return nil, err
	}
	var match *internal.HistoryEntry
	for i := range entries {
		if strings.HasPrefix(entries[i].SessionID, id) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous session id prefix: %s", id)
			}
			match = &entries[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session not found: %s (use 'graph-assistant history list')", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)
	historyRmCmd.Flags().BoolVar(&historyPurge, "purge", false, "Also delete the snapshot file")
	historyShowCmd.Flags().BoolVar(&historyCopy, "copy", false, "Also copy the conversation to the clipboard")
}
