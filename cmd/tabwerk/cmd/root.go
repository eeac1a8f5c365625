package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/robot/dumper"
	"github.com/msto63/tabwerk/pkg/core/config"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var (
	appConfig *config.Config
	appLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabwerk",
	Short: "tabwerk - Robot Framework Testdaten-Werkzeug",
	Long: `tabwerk liest und schreibt Robot Framework Testdaten im
Tabellenformat (.robot, .txt, .tsv).

Unveränderte Zeilen werden Byte für Byte erhalten, geänderte
Zeilen übernehmen das Layout ihrer Umgebung.

Befehle:
  format     - Dateien neu schreiben oder prüfen
  sections   - Section-Baum anzeigen
  recognize  - Erkannte Kontexte je Zeile anzeigen
  index      - Sections im SQLite-Index ablegen
  watch      - Verzeichnis überwachen
  view       - Section Viewer (TUI)`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./tabwerk.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and creates the logger on first use
func setup() (*config.Config, *logging.Logger, error) {
	if appConfig != nil {
		return appConfig, appLogger, nil
	}

	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	appLogger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: "tabwerk",
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	})
	appConfig = cfg
	return appConfig, appLogger, nil
}

// dumperOptions maps the format section of the configuration
func dumperOptions(cfg *config.Config, logger *logging.Logger) dumper.Options {
	return dumper.Options{
		PreferredSeparator: cfg.Format.PreferredSeparator,
		LineEnding:         cfg.LineEnding(),
		Placeholder:        cfg.Format.Placeholder,
		Normalize:          cfg.Format.Normalize,
		WrapAfter:          cfg.Format.WrapAfter,
		Logger:             logger,
	}
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
