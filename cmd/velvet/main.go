// Command velvet runs an interactive gallery of the widget library.
package main

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/charmbracelet/velvet/internal/log"
)

var (
	flagDebug   bool
	flagLogFile string
	flagQuick   bool
	flagManual  bool
)

var rootCmd = &cobra.Command{
	Use:   "velvet",
	Short: "A gallery of velvet's selection widgets",
	Long: heredoc.Doc(`
		Velvet is a small library of selection widgets for Bubble Tea:
		a single-select dropdown and a tab bar, built on a shared
		selection and interaction core.

		This command runs an interactive gallery demonstrating both.
	`),
	Example: heredoc.Doc(`
		# Run the gallery
		velvet

		# Log widget events to a file at debug level
		velvet --debug --log-file velvet.log

		# Skip open and close transitions
		velvet --reduced-motion
	`),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagLogFile != "" {
			log.Setup(flagLogFile, flagDebug)
		}
		m := newGallery(galleryOptions{
			QuickMotion: flagQuick,
			ManualTabs:  flagManual,
		})
		_, err := tea.NewProgram(m).Run()
		return err
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "log at debug level")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().BoolVar(&flagQuick, "reduced-motion", false, "skip open and close transitions")
	rootCmd.Flags().BoolVar(&flagManual, "manual-tabs", false, "activate tabs with enter instead of on focus")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
