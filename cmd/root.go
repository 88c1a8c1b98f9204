package cmd

import (
	"os"

	"github.com/kashguard/go-txverify/cmd/fixtures"
	"github.com/kashguard/go-txverify/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCommand 创建 txverify 根命令
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "txverify",
		Short:         "Verify signed UTXO transactions against their signing requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(command.ConfigFlag, "", "Path to a yaml or json config file")
	rootCmd.PersistentFlags().String(command.LogLevelFlag, "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(fixtures.New())
	return rootCmd
}

// Execute 执行根命令，失败时以非零状态退出
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
