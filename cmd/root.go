package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ykarmi/kinderbell/internal"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kinderbell",
	Short: "Send WhatsApp reminders for marked calendar events",
	Long: `kinderbell delivers scheduled reminder messages over WhatsApp Web,
triggered by Google Calendar events marked with a 🔔 in their title.

Each marked event lists its recipients in the event description, one name
per line. kinderbell resolves each name through a local contacts file,
delivers a personalized reminder per recipient, sends a per-event summary
to your own chat, and records the event in a local ledger so it is never
dispatched twice.

Quick Start:
  kinderbell run                 # Deliver pending reminders (window-gated)
  kinderbell run --force         # Deliver now regardless of the window
  kinderbell history             # Show the send ledger
  kinderbell contacts            # Show the loaded contact directory

Configuration lives in <data-dir>/config.yaml; sensible defaults apply
when the file is absent.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfigPath returns the explicit --config value or the default
// location under the data directory
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(dataDir, "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for state, contacts, logs and the browser profile")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
