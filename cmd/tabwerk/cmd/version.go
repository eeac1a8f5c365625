package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/tabwerk/pkg/core/version"
)

var versionComponents bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.Get().String())
		if versionComponents {
			for _, name := range []string{"parser", "dumper", "index", "viewer"} {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-11s %s\n", name+":", version.ComponentVersion(name))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionComponents, "components", false, "Versionen der Komponenten anzeigen")
}
