package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/internal/index"
	"github.com/msto63/tabwerk/internal/robot/dumper"
	"github.com/msto63/tabwerk/internal/watch"
	"github.com/msto63/tabwerk/pkg/core/cache"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

var watchWrite bool

var watchCmd = &cobra.Command{
	Use:   "watch <verzeichnis>",
	Short: "Verzeichnis überwachen",
	Long: `Überwacht ein Verzeichnis und indiziert geänderte Testdateien neu.
Mit --write werden geänderte Dateien vorher formatiert.

Entfernte Dateien werden aus dem Index gelöscht.
Beenden mit Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&watchWrite, "write", "w", false, "Geänderte Dateien formatieren")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	store, _, err := openIndex()
	if err != nil {
		printError("Index nicht verfügbar", err)
		return err
	}
	defer store.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts *dumper.Options
	if watchWrite {
		o := dumperOptions(cfg, logger)
		opts = &o
	}
	digests := cache.NewDigestCache(cache.Config{})
	defer digests.Close()

	w := watch.New(args[0], watchHandler(store, opts, digests, logger), watch.Options{
		Debounce:   cfg.Watch.Debounce.Duration,
		Extensions: cfg.Watch.Extensions,
		Logger:     logger,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Überwache %s (Ctrl+C zum Beenden)\n", args[0])
	return w.Run(ctx)
}

// watchHandler keeps the index in step with the watched files. Files
// whose content was seen before are skipped. With opts set, changed files
// are formatted before they are indexed.
func watchHandler(store index.Store, opts *dumper.Options, digests *cache.DigestCache, logger *logging.Logger) watch.Handler {
	return func(ctx context.Context, ev watch.Event) error {
		path, err := filepath.Abs(ev.Path)
		if err != nil {
			return err
		}
		if ev.Op == watch.OpRemoved {
			digests.Forget(path)
			return store.Remove(ctx, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !digests.Changed(path, data) {
			logger.Debug("File unchanged", "path", path)
			return nil
		}

		if opts != nil {
			res, err := formatFile(path, *opts, logger)
			if err != nil {
				return err
			}
			if res.Changed {
				if err := writeFormatted(path, res.Output); err != nil {
					return err
				}
				digests.Changed(path, []byte(res.Output))
				logger.Info("File formatted", "path", path)
			}
		}

		n, runID, err := indexFile(ctx, store, path, logger)
		if err != nil {
			return err
		}
		logger.Info("File indexed", "path", path, "sections", n, "run_id", runID)
		return nil
	}
}
