package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/m365tools/graph-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	insightsRange string
	insightsMax   int
)

var (
	insightTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	insightMeetingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	insightEmailStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	insightDocumentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	insightTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	insightBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				PaddingLeft(2)
)

// insightsCmd represents the insights command
var insightsCmd = &cobra.Command{
	Use:   "insights <category>",
	Short: "Summarize meetings, emails and documents",
	Long: `Pull insight summaries for a data category over a time window.

Categories: meetings, emails, documents, all, recent
Ranges:     today, week, month

When the API is unreachable (no token, offline, service errors after
retries) the summaries fall back to simulated data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()

		category, err := internal.ParseInsightCategory(args[0])
		if err != nil {
			return err
		}
		timeRange, err := internal.ParseTimeRange(insightsRange)
		if err != nil {
			return err
		}

		aggregator := internal.NewAggregator(newAPIClient(), appLogger, appConfig.RetryOptions())

		ctx := context.Background()
		var records []internal.InsightRecord
		err = internal.ShowProgress(ctx, fmt.Sprintf("Gathering %s insights (%s)", category, timeRange), func() error {
			var insightErr error
			records, insightErr = aggregator.GetInsights(ctx, category, timeRange, insightsMax)
			return insightErr
		})
		recordUsage("insights", started, err)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			internal.PrintWarning("No insights found for the selected window")
			return nil
		}

		fmt.Println(insightTitleStyle.Render(fmt.Sprintf("Insights: %s (%s)", category, timeRange)))
		fmt.Println()
		for _, record := range records {
			printInsight(record)
		}
		return nil
	},
}

func printInsight(record internal.InsightRecord) {
	var label string
	switch record.Type {
	case internal.InsightMeeting:
		label = insightMeetingStyle.Render("[meeting]")
	case internal.InsightEmail:
		label = insightEmailStyle.Render("[email]")
	case internal.InsightDocument:
		label = insightDocumentStyle.Render("[document]")
	}

	timestamp := ""
	if !record.Timestamp.IsZero() {
		timestamp = insightTimeStyle.Render(record.Timestamp.Format("Mon Jan 2 15:04"))
	}
	fmt.Printf("%s %s %s\n", label, record.Title, timestamp)
	if record.Description != "" {
		fmt.Println(insightBodyStyle.Render(record.Description))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().StringVarP(&insightsRange, "range", "r", "today", "Time range (today, week, month)")
	insightsCmd.Flags().IntVarP(&insightsMax, "max", "m", internal.DefaultMaxResults, "Maximum number of results")
}
