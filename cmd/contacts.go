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
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// contactsCmd represents the contacts command
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Show the loaded contact directory",
	Long: `Show every entry in the contacts file and flag entries that cannot be
used for delivery (missing phone number).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(resolveConfigPath(), dataDir)
		if err != nil {
			return err
		}

		contacts := internal.LoadDirectory(cfg.Paths.Contacts).All()
		if len(contacts) == 0 {
			fmt.Println(headerStyle.Render("📇 No contacts loaded"))
			fmt.Printf("Expected contacts file: %s\n", cfg.Paths.Contacts)
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("📇 %d contact(s)", len(contacts))))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Name")+"\t"+titleStyle.Render("Phone")+"\t"+titleStyle.Render("Type")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 60))

		for _, c := range contacts {
			phone := c.Phone
			if phone == "" {
				phone = warnStyle.Render("missing!")
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", c.Name, phone, typeStyle.Render(c.Type))
		}

		_ = w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
}
