package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacesweep-dev/spacesweep/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "spacesweep",
		Short:   "Reconcile Starling transactions against savings spaces",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "spacesweep.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand(&configPath, &verbose))
	rootCmd.AddCommand(newTransactionsCommand(&configPath, &verbose))
	rootCmd.AddCommand(newSpacesCommand(&configPath, &verbose))
	rootCmd.AddCommand(newReconcileCommand(&configPath, &verbose))

	return rootCmd
}
