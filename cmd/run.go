package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/ykarmi/kinderbell/internal"
	"github.com/ykarmi/kinderbell/internal/whatsapp"
)

var (
	runForce  bool
	runDryRun bool
)

var (
	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	recipientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch marked calendar events and deliver pending reminders",
	Long: `Run the reminder pipeline once:

  1. Check the configured delivery window (bypass with --force)
  2. Fetch upcoming events from Google Calendar
  3. Keep events marked with 🔔 and parse their recipients
  4. Skip events already recorded in the send ledger
  5. Deliver one reminder per recipient over WhatsApp Web
  6. Send a per-event summary to your own chat and commit the ledger

Exit status is non-zero on any fatal error (calendar fetch, transport
initialization, ledger write).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(resolveConfigPath(), dataDir)
		if err != nil {
			return err
		}

		if err := internal.SetLogFile(cfg.Paths.Log); err != nil {
			internal.LogWarn("could not open log file %s: %v", cfg.Paths.Log, err)
		}
		defer internal.CloseLogFile()

		internal.LogInfo("=== kinderbell starting ===")

		now := time.Now()
		if !cfg.Window.Contains(now) {
			if !runForce {
				internal.LogWarn("not within delivery window %s-%s (current time %02d:%02d), use --force to send anyway",
					cfg.Window.Start, cfg.Window.End, now.Hour(), now.Minute())
				return nil
			}
			internal.LogWarn("outside delivery window %s-%s, proceeding because of --force",
				cfg.Window.Start, cfg.Window.End)
		}

		ctx := cmd.Context()

		internal.LogInfo("fetching calendar events...")
		source := internal.NewGoogleCalendar(cfg.Calendar)
		fetchWindow := internal.UpcomingWindow(now, cfg.Calendar.DaysAhead)
		events, err := source.FetchUpcomingEvents(ctx, fetchWindow)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			internal.LogInfo("no events found in window")
			return nil
		}

		reminders := internal.ExtractReminders(events)
		if len(reminders) == 0 {
			internal.LogInfo("no reminder events found (no %s in titles)", internal.ReminderMarker)
			return nil
		}
		internal.LogInfo("found %d reminder(s) to process", len(reminders))

		ledger := internal.NewLedger(cfg.Paths.Ledger)
		var pending []internal.ReminderEvent
		for _, r := range reminders {
			if !ledger.IsPending(r.EventID) {
				internal.LogInfo("already sent: %s", r.Title)
				continue
			}
			pending = append(pending, r)
		}
		if len(pending) == 0 {
			internal.LogInfo("all reminders already sent")
			return nil
		}
		internal.LogInfo("%d reminder(s) to send", len(pending))

		if runDryRun {
			printDryRun(pending)
			return nil
		}

		directory := internal.LoadDirectory(cfg.Paths.Contacts)

		journal, err := internal.OpenJournal(cfg.Paths.Journal)
		if err != nil {
			internal.LogWarn("outcome journal unavailable, continuing without it: %v", err)
			journal = nil
		} else {
			defer func() { _ = journal.Close() }()
		}

		client := whatsapp.NewClient(cfg.WhatsApp, cfg.Pace)
		defer client.Close()

		if err := client.Initialize(ctx); err != nil {
			return err
		}

		dispatcher := internal.NewDispatcher(client, directory, ledger, journal)
		stats, err := dispatcher.Run(ctx, pending)
		if err != nil {
			// Best-effort operator notification before teardown
			if notifyErr := client.SendToSelf(ctx, internal.FailureNotice(err)); notifyErr != nil {
				internal.LogError("could not send error notification: %v", notifyErr)
			}
			return err
		}

		internal.LogInfo("=== kinderbell completed: %d processed, %d skipped ===", stats.Processed, stats.Skipped)
		return nil
	},
}

func printDryRun(pending []internal.ReminderEvent) {
	fmt.Println(pendingStyle.Render(fmt.Sprintf("Dry run: %d reminder(s) would be sent", len(pending))))
	for _, r := range pending {
		fmt.Printf("  %s (%s)\n", recipientStyle.Render(r.Title), r.ScheduledAt.Format("2006-01-02 15:04"))
		for _, name := range r.Recipients {
			fmt.Printf("    • %s\n", name)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runForce, "force", false, "Process now regardless of the delivery window")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Report what would be sent without touching WhatsApp or the ledger")
}
