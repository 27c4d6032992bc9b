package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slnforge.dev/pkg/slnforge/internal/domain"
)

// fakeWorkflow records the arguments each operation receives.
type fakeWorkflow struct {
	previewArgs []domain.PreviewArgs
	syncArgs    []domain.SyncArgs
	err         error
}

func (f *fakeWorkflow) Preview(_ context.Context, args domain.PreviewArgs) error {
	f.previewArgs = append(f.previewArgs, args)
	return f.err
}

func (f *fakeWorkflow) Sync(_ context.Context, args domain.SyncArgs) error {
	f.syncArgs = append(f.syncArgs, args)
	return f.err
}

// swapWorkflow installs a fake for the duration of the test.
func swapWorkflow(t *testing.T) *fakeWorkflow {
	t.Helper()

	fake := &fakeWorkflow{}
	original := workflow
	workflow = fake
	t.Cleanup(func() { workflow = original })

	return fake
}

func newSyncTestCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newSyncCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func TestSyncCmd_Defaults(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newSyncTestCmd()
	cmd.SetArgs([]string{"sync"})
	require.NoError(t, cmd.Execute())

	require.Len(t, fake.syncArgs, 1)
	args := fake.syncArgs[0]

	assert.Equal(t, ".", string(args.RepoRoot))
	assert.Equal(t, defaultManifestFile, string(args.Manifest))
	assert.Equal(t, defaultSolutionFile, string(args.Solution))
	assert.Equal(t, defaultGitBranch, args.Branch)
	assert.False(t, args.DryRun)
	assert.False(t, args.Update)
	assert.False(t, args.Rebuild)
}

func TestSyncCmd_Flags(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newSyncTestCmd()
	cmd.SetArgs([]string{"sync", "--dry-run", "--update", "--rebuild", "--solution", "Zonit.sln"})
	require.NoError(t, cmd.Execute())

	require.Len(t, fake.syncArgs, 1)
	args := fake.syncArgs[0]

	assert.True(t, args.DryRun)
	assert.True(t, args.Update)
	assert.True(t, args.Rebuild)
	assert.Equal(t, "Zonit.sln", string(args.Solution))
}

func TestSyncCmd_ShortFlags(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newSyncTestCmd()
	cmd.SetArgs([]string{"sync", "-n", "-u"})
	require.NoError(t, cmd.Execute())

	require.Len(t, fake.syncArgs, 1)
	assert.True(t, fake.syncArgs[0].DryRun)
	assert.True(t, fake.syncArgs[0].Update)
}

func TestSyncCmd_RejectsPositionalArgs(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newSyncTestCmd()
	cmd.SetArgs([]string{"sync", "extra"})

	require.Error(t, cmd.Execute())
	assert.Empty(t, fake.syncArgs)
}

func TestSyncCmd_PropagatesWorkflowError(t *testing.T) {
	fake := swapWorkflow(t)
	fake.err = assert.AnError

	cmd := newSyncTestCmd()
	cmd.SetArgs([]string{"sync"})

	require.Error(t, cmd.Execute())
}
