// Package cmd provides the root command and CLI setup for slnforge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"slnforge.dev/pkg/slnforge/internal/adapter"
	"slnforge.dev/pkg/slnforge/internal/controller"
	"slnforge.dev/pkg/slnforge/internal/domain"
)

var repoFS adapter.RepoFS
var solutionStore adapter.SolutionStore
var gitRunner adapter.GitRunner
var scanner *domain.Scanner
var workflow domain.Workflow
var ui controller.UI

// solutionPathFlag is a root-level flag shared by commands that touch the
// solution file.
var solutionPathFlag string

// manifestPathFlag points at the submodule manifest.
var manifestPathFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	repoFS = adapter.NewLocalRepoFS()
	solutionStore = adapter.NewFileSolutionStore(repoFS)
	gitRunner = adapter.NewLocalGitRunner()
	scanner = domain.NewScanner(repoFS, scanOptionsFromConfig())
	workflow = domain.NewWorkflow(repoFS, solutionStore, gitRunner, scanner, ui)
}

const rootLongDescription = `Slnforge keeps a Visual Studio solution file in step with the Git
submodules of an aggregator repository. It lists the submodules declared in
.gitmodules, scans each one for project files and auxiliary docs, groups
them into category folders, and writes or patches the .sln accordingly.`

const syncLongDescription = `Regenerate the solution file from the submodules' on-disk layout.

An existing solution is patched in place: entries already registered keep
their identifiers and only newly discovered folders and projects are added.
Use --rebuild to rewrite the file from scratch (the previous file is backed
up first) and --dry-run to inspect the computed structure without writing.`

const previewLongDescription = `Compute the solution structure without touching the solution file and
print it as a tree (default) or as YAML (--format yaml).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slnforge",
		Short: "Keep a Visual Studio solution in sync with Git submodules",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&solutionPathFlag, solutionFlagName, "s",
			viper.GetString(solutionFlagName),
			"path of the solution file, relative to the repository root",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(solutionFlagName), solutionFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&manifestPathFlag, manifestFlagName, "m",
			viper.GetString(manifestFlagName),
			"path of the submodule manifest, relative to the repository root",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(manifestFlagName), manifestFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// scanOptionsFromConfig assembles the scanner options out of the naming and
// scanning config keys.
func scanOptionsFromConfig() domain.ScanOptions {
	return domain.ScanOptions{
		Naming: domain.NamingOptions{
			StripPrefixes: viper.GetStringSlice(namingStripPrefixesKey),
			Acronyms:      viper.GetStringSlice(namingAcronymsKey),
		},
		ExtraExcludeDirs: viper.GetStringSlice(scanExcludeDirsKey),
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
