package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/index"
	"github.com/msto63/tabwerk/internal/robot/parser"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

var indexCmd = &cobra.Command{
	Use:   "index <datei...>",
	Short: "Sections im Index ablegen",
	Long: `Ermittelt die Sections der Testdateien und legt sie im
SQLite-Index ab. Bereits indizierte Dateien werden ersetzt.

Beispiele:
  tabwerk index suite.robot resource.txt
  tabwerk index list
  tabwerk index remove suite.robot`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "Indizierte Dateien anzeigen",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

var indexRemoveCmd = &cobra.Command{
	Use:   "remove <datei...>",
	Short: "Dateien aus dem Index entfernen",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexRemove,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexRemoveCmd)
}

// openIndex opens the index database named by the configuration
func openIndex() (*index.SQLiteStore, *logging.Logger, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, nil, err
	}
	store, err := index.NewSQLiteStore(index.Config{Path: cfg.Index.Path, Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	store, logger, err := openIndex()
	if err != nil {
		printError("Index nicht verfügbar", err)
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, path := range args {
		n, runID, err := indexFile(ctx, store, path, logger)
		if err != nil {
			printError("Indizieren fehlgeschlagen", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indiziert: %s (%d Sections, Lauf %s)\n", path, n, runID)
	}
	return nil
}

// indexFile stores the sections of the file at path under its absolute
// path and returns the number of sections and the run id
func indexFile(ctx context.Context, store index.Store, path string, logger *logging.Logger) (int, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	a, err := parser.New(parser.Options{Logger: logger}).Analyze(abs, string(data))
	if err != nil {
		return 0, "", err
	}
	runID, err := store.IndexFile(ctx, abs, a.Format.String(), a.Sections)
	if err != nil {
		return 0, "", err
	}
	return len(index.Flatten(a.Sections)), runID, nil
}

func runIndexList(cmd *cobra.Command, args []string) error {
	store, _, err := openIndex()
	if err != nil {
		printError("Index nicht verfügbar", err)
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := store.Files(ctx)
	if err != nil {
		printError("Abfrage fehlgeschlagen", err)
		return err
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "Keine Dateien indiziert")
		return nil
	}
	fmt.Fprintf(out, "%-6s %-9s %-20s %s\n", "FORMAT", "SECTIONS", "INDIZIERT", "DATEI")
	for _, f := range files {
		fmt.Fprintf(out, "%-6s %-9d %-20s %s\n",
			f.Format, f.Sections, f.IndexedAt.Local().Format("2006-01-02 15:04:05"), f.Path)
	}
	return nil
}

func runIndexRemove(cmd *cobra.Command, args []string) error {
	store, _, err := openIndex()
	if err != nil {
		printError("Index nicht verfügbar", err)
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if err := store.Remove(ctx, abs); err != nil {
			printError("Entfernen fehlgeschlagen", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Entfernt: %s\n", path)
	}
	return store.Vacuum(ctx)
}
