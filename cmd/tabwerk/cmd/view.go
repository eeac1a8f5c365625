package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/tui/sectionviewer"
)

var viewCmd = &cobra.Command{
	Use:     "view <datei>",
	Aliases: []string{"viewer"},
	Short:   "Startet den Section Viewer",
	Long: `Startet den interaktiven Section Viewer.

Links steht der Section-Baum der Datei, rechts die Quellzeilen
der ausgewählten Section.

Tastenkuerzel:
  ↑/↓ , k/j   Section wählen
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Quelltext scrollen
  r           Datei neu laden
  q, Ctrl+C   Beenden`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := sectionviewer.DefaultConfig()
	cfg.Path = args[0]
	return sectionviewer.Run(cfg)
}
