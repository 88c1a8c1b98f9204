package command_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kashguard/go-txverify/internal/config"
	"github.com/kashguard/go-txverify/internal/util/command"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	level := zerolog.GlobalLevel()
	logger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})
}

func newCommand(run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{Use: "run", RunE: run, SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String(command.ConfigFlag, "", "")
	cmd.Flags().String(command.LogLevelFlag, "", "")
	cmd.Flags().String("path", "", "")
	return cmd
}

func TestWithConfig(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "txverify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixtures:\n  path: from-file\nlogger:\n  pretty_print_console: false\n"), 0o600))

	var testError = errors.New("test error")
	var got config.Config

	cmd := newCommand(func(cmd *cobra.Command, _ []string) error {
		return command.WithConfig(cmd, map[string]string{"fixtures.path": "path"}, func(ctx context.Context, cfg config.Config) error {
			require.NotNil(t, ctx)
			got = cfg
			return testError
		})
	})
	cmd.SetArgs([]string{"--config", path, "--log-level", "error", "--path", "from-flag"})

	resultErr := cmd.Execute()
	assert.Equal(t, testError, resultErr)
	assert.Equal(t, "from-flag", got.Fixtures.Path)
	assert.Equal(t, "error", got.Logger.Level)
	assert.False(t, got.Logger.PrettyPrintConsole)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestWithConfigErrors(t *testing.T) {
	restoreLogger(t)

	called := false
	fn := func(context.Context, config.Config) error {
		called = true
		return nil
	}

	cmd := newCommand(func(cmd *cobra.Command, _ []string) error {
		return command.WithConfig(cmd, nil, fn)
	})
	cmd.SetArgs([]string{"--config", "txverify.toml"})
	assert.Error(t, cmd.Execute())

	cmd = newCommand(func(cmd *cobra.Command, _ []string) error {
		return command.WithConfig(cmd, map[string]string{"fixtures.path": "missing"}, fn)
	})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())

	cmd = newCommand(func(cmd *cobra.Command, _ []string) error {
		return command.WithConfig(cmd, nil, fn)
	})
	cmd.SetArgs([]string{"--log-level", "loud"})
	assert.Error(t, cmd.Execute())

	assert.False(t, called)
}

func TestNewSubcommandGroup(t *testing.T) {
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	group := command.NewSubcommandGroup("group", child)

	assert.Equal(t, "group", group.Use)
	assert.Equal(t, "group related subcommands", group.Short)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Name())

	var out bytes.Buffer
	group.SetOut(&out)
	group.SetArgs([]string{})
	require.NoError(t, group.Execute())
	assert.Contains(t, out.String(), "child")
}
