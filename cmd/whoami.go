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
	whoamiSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Bold(true).
				Underline(true)

	whoamiOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	whoamiWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	whoamiInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check API connectivity and show the signed-in identity",
	Long: `Verify that the assistant can reach the configured API endpoint with
the current credentials:
  • Configuration and endpoint
  • Token availability
  • Who-am-I lookup

Useful for debugging auth issues. The command never fails hard: missing
credentials are reported as warnings, since insights work offline with
simulated data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		ctx := context.Background()

		fmt.Println(whoamiSectionStyle.Render("🔍 Graph Assistant Connection Check"))
		fmt.Println()

		fmt.Println(whoamiInfoStyle.Render("Step 1: Configuration"))
		fmt.Printf("   Endpoint: %s\n", appConfig.APIBaseURL)
		fmt.Printf("   Token source: $%s\n", appConfig.TokenEnvVar)
		fmt.Println()

		fmt.Println(whoamiInfoStyle.Render("Step 2: Token availability"))
		provider := &internal.EnvTokenProvider{Var: appConfig.TokenEnvVar}
		if _, err := provider.AccessToken(ctx); err != nil {
			fmt.Println(whoamiWarnStyle.Render("⚠️  No access token available"))
			fmt.Println("   Insights will fall back to simulated data.")
			recordUsage("whoami", started, nil)
			return nil
		}
		fmt.Println(whoamiOKStyle.Render("✅ Token found"))
		fmt.Println()

		fmt.Println(whoamiInfoStyle.Render("Step 3: Who-am-I lookup"))
		client := newAPIClient()
		identity, err := client.Identity(ctx)
		if err != nil {
			fmt.Println(whoamiWarnStyle.Render("⚠️  Connection test failed"))
			fmt.Printf("   %v\n", err)
			recordUsage("whoami", started, err)
			return nil
		}
		fmt.Println(whoamiOKStyle.Render("✅ Connected"))
		fmt.Printf("   Name:      %s\n", identity.DisplayName)
		fmt.Printf("   Principal: %s\n", identity.UserPrincipalName)
		if identity.Mail != "" {
			fmt.Printf("   Mail:      %s\n", identity.Mail)
		}
		recordUsage("whoami", started, nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
