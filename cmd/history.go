package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/ykarmi/kinderbell/internal"
)

var (
	historyLimit int
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	deliveredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the send ledger",
	Long: `Show every event recorded in the send ledger, newest last, with the
per-recipient delivery outcomes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(resolveConfigPath(), dataDir)
		if err != nil {
			return err
		}

		records := internal.NewLedger(cfg.Paths.Ledger).History()
		if len(records) == 0 {
			fmt.Println(headerStyle.Render("📋 No reminders sent yet"))
			return nil
		}

		if historyLimit > 0 && len(records) > historyLimit {
			records = records[len(records)-historyLimit:]
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("📋 %d sent reminder(s)", len(records))))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Event")+"\t"+titleStyle.Render("Processed")+"\t"+titleStyle.Render("Recipients")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, record := range records {
			title := record.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}

			processed := dateStyle.Render(record.ProcessedAt.Format("2006-01-02 15:04"))

			outcomes := make([]string, 0, len(record.Results))
			for _, r := range record.Results {
				if r.Delivered() {
					outcomes = append(outcomes, deliveredStyle.Render("✓ "+r.Recipient))
				} else {
					outcomes = append(outcomes, failedStyle.Render("✗ "+r.Recipient+" ("+r.Reason()+")"))
				}
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", title, processed, strings.Join(outcomes, ", "))
		}

		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show only the N most recent records (0 = all)")
}
