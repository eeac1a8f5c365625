package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/robot/dumper"
	"github.com/msto63/tabwerk/internal/robot/parser"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

var (
	formatWrite     bool
	formatCheck     bool
	formatNormalize bool
)

var formatCmd = &cobra.Command{
	Use:   "format <datei...>",
	Short: "Testdaten neu schreiben",
	Long: `Liest Testdateien und schreibt sie über den Dumper neu.

Ohne Flag wird das Ergebnis auf stdout ausgegeben. Mit --write wird
die Datei ersetzt, wenn sich der Inhalt ändert. Mit --check werden
nur die Dateien gemeldet, die sich ändern würden; der Befehl endet
dann mit einem Fehler.

Beispiele:
  tabwerk format suite.robot
  tabwerk format --write tests/*.robot
  tabwerk format --check --normalize resource.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Dateien ersetzen")
	formatCmd.Flags().BoolVar(&formatCheck, "check", false, "Nur prüfen, ob sich Dateien ändern")
	formatCmd.Flags().BoolVar(&formatNormalize, "normalize", false, "Settings sortieren und Trenner vereinheitlichen")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	opts := dumperOptions(cfg, logger)
	if formatNormalize {
		opts.Normalize = true
	}

	out := cmd.OutOrStdout()
	var differs int
	for _, path := range args {
		res, err := formatFile(path, opts, logger)
		if err != nil {
			printError("Formatieren fehlgeschlagen", err)
			return err
		}

		switch {
		case formatCheck:
			if res.Changed {
				differs++
				fmt.Fprintln(out, path)
			}
		case formatWrite:
			if !res.Changed {
				continue
			}
			if err := writeFormatted(path, res.Output); err != nil {
				printError("Schreiben fehlgeschlagen", err)
				return err
			}
			fmt.Fprintf(out, "Formatiert: %s\n", path)
		default:
			fmt.Fprint(out, res.Output)
		}
	}

	if differs > 0 {
		return fmt.Errorf("%d Datei(en) nicht formatiert", differs)
	}
	return nil
}

// formatResult is the dump of one file
type formatResult struct {
	Output  string
	Changed bool
}

// formatFile parses and dumps the file at path. With opts.Normalize every
// element is rendered again instead of copied.
func formatFile(path string, opts dumper.Options, logger *logging.Logger) (formatResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return formatResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	src := string(data)

	f, err := parser.New(parser.Options{Logger: logger}).Parse(path, src)
	if err != nil {
		return formatResult{}, err
	}
	if opts.Normalize {
		f.Touch()
	}

	out, err := dumper.ForFile(path, opts).DumpString(f)
	if err != nil {
		return formatResult{}, err
	}
	return formatResult{Output: out, Changed: out != src}, nil
}

// writeFormatted replaces the file content and keeps its permissions
func writeFormatted(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
