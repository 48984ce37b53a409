package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/rove/internal/cli/model"
)

var errNoDocument = errors.New("no document given and playground.document not configured")

var playCmd = &cobra.Command{
	Use:   "play [document.html]",
	Short: "Interactive playground over an HTML document",
	Long: `Loads an HTML document, installs the focus engine over it, and lets you
drive navigation with the keyboard. Arrow keys navigate within the focused
group, tab moves between sequential stops, and the file is reloaded when it
changes on disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := app.Config.Playground.Document
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return errNoDocument
		}

		m, err := model.NewPlayground(app.Context(), app.Config.Playground, app.Config.Engine, path)
		if err != nil {
			return fmt.Errorf("start playground: %w", err)
		}

		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run playground: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
