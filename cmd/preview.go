package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slnforge.dev/pkg/slnforge/internal/domain"
	m "slnforge.dev/pkg/slnforge/internal/model"
)

var previewFormatFlag string

// previewCmd represents the preview command.
var previewCmd = newPreviewCmd()

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the computed solution structure",
		Long:  previewLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewFormatFlag != "tree" && previewFormatFlag != "yaml" {
				return fmt.Errorf("unknown format %q (want tree or yaml)", previewFormatFlag)
			}

			return workflow.Preview(context.Background(), domain.PreviewArgs{
				RepoRoot: ".",
				Manifest: m.Path(viper.GetString(manifestFlagName)),
				Format:   previewFormatFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&previewFormatFlag, "format", "f", "tree", "output format: tree or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
