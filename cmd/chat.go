package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/m365tools/graph-assistant/internal"
	"github.com/m365tools/graph-assistant/internal/export"
	"github.com/spf13/cobra"
)

var (
	chatBannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	chatUserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	chatAssistantStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135"))

	chatHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the assistant.

Slash commands inside the shell:
  /insights [category] [range]   Pull insight summaries into the conversation
  /save                          Save the conversation to history
  /export <format> <path>        Export the conversation (json, csv, html, md, txt)
  /context [key] [value]         Show or set conversation context
  /stats                         Show feature usage for this run
  /quit                          Leave the shell`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := internal.NewSession(appConfig.SystemPrompt, map[string]interface{}{
			"client":  "graph-assistant",
			"version": version,
		})
		responder := internal.NewResponder(appConfig.ChatEndpoint, appLogger)
		aggregator := internal.NewAggregator(newAPIClient(), appLogger, appConfig.RetryOptions())

		fmt.Println(chatBannerStyle.Render("Graph Assistant"))
		fmt.Println(chatHintStyle.Render("Ask about meetings, emails or documents. Type /quit to leave, help for commands."))
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for {
			fmt.Print(chatUserStyle.Render("you> "))
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "/") {
				quit, err := runSlashCommand(session, aggregator, line)
				if err != nil {
					// A failed command never kills the loop
					internal.PrintError(err.Error())
				}
				if quit {
					return nil
				}
				continue
			}

			input := internal.TruncateUserInput(line)
			if input != line {
				internal.PrintWarning(fmt.Sprintf("Input truncated to %d characters", internal.MaxUserContentLength))
			}

			started := time.Now()
			session.AddMessage(internal.RoleUser, input, nil)
			reply := responder.Reply(context.Background(), session, input)
			session.AddMessage(internal.RoleAssistant, reply, nil)
			recordUsage("chat", started, nil)

			fmt.Printf("%s %s\n\n", chatAssistantStyle.Render("assistant>"), reply)
		}
	},
}

func runSlashCommand(session *internal.Session, aggregator *internal.Aggregator, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/insights":
		categoryArg := "recent"
		rangeArg := "today"
		if len(fields) > 1 {
			categoryArg = fields[1]
		}
		if len(fields) > 2 {
			rangeArg = fields[2]
		}
		return false, chatInsights(session, aggregator, categoryArg, rangeArg)

	case "/save":
		return false, saveSessionToHistory(session)

	case "/export":
		if len(fields) < 3 {
			return false, fmt.Errorf("usage: /export <format> <path>")
		}
		format, err := export.ParseFormat(fields[1])
		if err != nil {
			return false, err
		}
		path := fields[2]
		opts := export.Options{IncludeMetadata: true, Title: "Conversation Export"}
		if err := export.WriteFile(session, path, format, opts, appLogger); err != nil {
			return false, err
		}
		internal.PrintSuccess(fmt.Sprintf("Exported conversation to %s", path))
		return false, nil

	case "/context":
		if len(fields) == 1 {
			for key, value := range session.Context() {
				fmt.Printf("  %s = %v\n", key, value)
			}
			return false, nil
		}
		if len(fields) < 3 {
			return false, fmt.Errorf("usage: /context <key> <value>")
		}
		session.SetContext(fields[1], strings.Join(fields[2:], " "))
		return false, nil

	case "/stats":
		for feature, stat := range appUsage.Stats() {
			fmt.Printf("  %-12s count=%d errors=%d total=%s\n", feature, stat.Count, stat.ErrorCount, stat.TotalDuration)
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s (try /insights, /save, /export, /context, /stats, /quit)", fields[0])
	}
}

func chatInsights(session *internal.Session, aggregator *internal.Aggregator, categoryArg, rangeArg string) error {
	started := time.Now()

	category, err := internal.ParseInsightCategory(categoryArg)
	if err != nil {
		recordUsage("chat-insights", started, err)
		return err
	}
	timeRange, err := internal.ParseTimeRange(rangeArg)
	if err != nil {
		recordUsage("chat-insights", started, err)
		return err
	}

	records, err := aggregator.GetInsights(context.Background(), category, timeRange, internal.DefaultMaxResults)
	recordUsage("chat-insights", started, err)
	if err != nil {
		return err
	}

	for _, record := range records {
		printInsight(record)
	}

	// Keep the lookup in the conversation so exports carry it
	session.AddMessage(internal.RoleUser, fmt.Sprintf("/insights %s %s", category, timeRange), nil)
	session.AddMessage(internal.RoleAssistant, summarizeInsights(records), map[string]interface{}{
		"category": string(category),
		"range":    string(timeRange),
	})
	return nil
}

func summarizeInsights(records []internal.InsightRecord) string {
	if len(records) == 0 {
		return "I didn't find anything in that window."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I found (%d items):\n", len(records))
	for _, record := range records {
		fmt.Fprintf(&b, "- [%s] %s\n", record.Type, record.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// saveSessionToHistory snapshots the session into the data dir and records
// it in the history index
func saveSessionToHistory(session *internal.Session) error {
	sessionsDir, err := appConfig.SessionsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	snapshotPath := filepath.Join(sessionsDir, fmt.Sprintf("session_%s.json", session.ID))
	if err := session.Save(snapshotPath); err != nil {
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

	if err := store.Record(internal.HistoryEntry{
		SessionID:    session.ID,
		Title:        sessionTitle(session),
		StartTime:    session.StartTime,
		SavedAt:      time.Now(),
		MessageCount: session.MessageCount(),
		SnapshotPath: snapshotPath,
	}); err != nil {
		return err
	}

	internal.PrintSuccess(fmt.Sprintf("Saved conversation %s", session.ID))
	return nil
}

// sessionTitle derives a short title from the first user message
func sessionTitle(session *internal.Session) string {
	for _, msg := range session.Messages() {
		if msg.Role == internal.RoleUser {
			title := strings.TrimSpace(msg.Content)
			if runes := []rune(title); len(runes) > 60 {
				title = string(runes[:57]) + "..."
			}
			return title
		}
	}
	return "Untitled conversation"
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
