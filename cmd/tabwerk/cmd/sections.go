package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/robot/parser"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/tui/sectionviewer"
)

var sectionsPlain bool

var sectionsCmd = &cobra.Command{
	Use:   "sections <datei>",
	Short: "Zeigt den Section-Baum einer Datei",
	Long: `Zeigt den Section-Baum einer Testdatei mit Start- und Endposition
jeder Section (Zeile:Spalte).

Auf einem Terminal wird die Ausgabe farbig dargestellt,
--plain schaltet die Farben ab.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().BoolVar(&sectionsPlain, "plain", false, "Ausgabe ohne Farben")
}

func runSections(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		printError("Datei nicht lesbar", err)
		return err
	}
	a, err := parser.New(parser.Options{Logger: logger}).Analyze(path, string(data))
	if err != nil {
		printError("Sections nicht ermittelbar", err)
		return err
	}

	styled := !sectionsPlain && isatty.IsTerminal(os.Stdout.Fd())
	fmt.Fprint(cmd.OutOrStdout(), renderSections(a.Sections, styled))
	return nil
}

// renderSections prints one section per line, indented by depth
func renderSections(roots []*section.Section, styled bool) string {
	var sb strings.Builder
	for _, r := range roots {
		r.Walk(func(s *section.Section, depth int) {
			indent := strings.Repeat("  ", depth)
			name := s.Type.String()
			span := fmt.Sprintf("%s-%s", s.Start, s.End)
			if styled {
				name = sectionviewer.TypeStyle(name).Render(name)
				span = sectionviewer.RangeStyle.Render(span)
			}
			fmt.Fprintf(&sb, "%s%s %s\n", indent, name, span)
		})
	}
	return sb.String()
}
