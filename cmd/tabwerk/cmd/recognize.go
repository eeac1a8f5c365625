package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/robot/parser"
)

var recognizeLine int

var recognizeCmd = &cobra.Command{
	Use:   "recognize <datei>",
	Short: "Zeigt die erkannten Kontexte je Zeile",
	Long: `Listet für jede Zeile einer Testdatei die erkannten Kontexte
(Tabellenköpfe, Settings, Variablen, Trenner, Kommentare ...)
mit Token-Bereich und Text.

Beispiele:
  tabwerk recognize suite.robot
  tabwerk recognize --line 12 suite.robot`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().IntVarP(&recognizeLine, "line", "l", 0, "Nur diese Zeile (1-basiert)")
}

func runRecognize(cmd *cobra.Command, args []string) error {
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
		printError("Analyse fehlgeschlagen", err)
		return err
	}
	if recognizeLine < 0 || recognizeLine > len(a.Lines) {
		return fmt.Errorf("Zeile %d ausserhalb der Datei (1-%d)", recognizeLine, len(a.Lines))
	}

	printContexts(cmd.OutOrStdout(), a, recognizeLine)
	return nil
}

// printContexts writes the contexts of every line, or of line only when
// it is not 0
func printContexts(w io.Writer, a *parser.Analysis, line int) {
	for i, cs := range a.Contexts {
		if line != 0 && i != line-1 {
			continue
		}
		if len(cs) == 0 {
			continue
		}
		fmt.Fprintf(w, "%d:\n", i+1)
		for _, c := range cs {
			fmt.Fprintf(w, "  %-32s [%d:%d] %q\n", c.Type, c.From, c.To, c.Text())
		}
	}
}
