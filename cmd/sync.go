package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slnforge.dev/pkg/slnforge/internal/domain"
	m "slnforge.dev/pkg/slnforge/internal/model"
)

var syncDryRunFlag bool
var syncUpdateFlag bool
var syncRebuildFlag bool

// syncCmd represents the sync command.
var syncCmd = newSyncCmd()

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the solution file",
		Long:  syncLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Sync(context.Background(), domain.SyncArgs{
				RepoRoot: ".",
				Manifest: m.Path(viper.GetString(manifestFlagName)),
				Solution: m.Path(viper.GetString(solutionFlagName)),
				DryRun:   syncDryRunFlag,
				Update:   syncUpdateFlag,
				Rebuild:  syncRebuildFlag,
				Branch:   viper.GetString(gitBranchKey),
			})
		},
	}

	configureSyncFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func configureSyncFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&syncDryRunFlag, "dry-run", "n", false, "print the computed structure without writing")
	cmd.Flags().BoolVarP(&syncUpdateFlag, "update", "u", false, "fetch, checkout and pull each submodule before scanning")
	cmd.Flags().BoolVar(&syncRebuildFlag, "rebuild", false, "rewrite the solution from scratch instead of patching")
}
