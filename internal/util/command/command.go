package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kashguard/go-txverify/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	// ConfigFlag 配置文件路径参数
	ConfigFlag = "config"
	// LogLevelFlag 日志级别参数
	LogLevelFlag = "log-level"
)

// NewSubcommandGroup 创建只用于分组的命令，执行时打印帮助
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s related subcommands", use),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}
	cmd.AddCommand(subcommands...)
	return cmd
}

// WithConfig 加载配置并初始化日志后调用 fn。bindings 把配置键映射到 cmd 的参数名，
// 例如 {"fixtures.path": "path"}；--log-level 总是绑定到 logger.level
func WithConfig(cmd *cobra.Command, bindings map[string]string, fn func(ctx context.Context, cfg config.Config) error) error {
	loader := config.NewLoader(config.EnvPrefix)

	if flag := cmd.Flags().Lookup(ConfigFlag); flag != nil && flag.Value.String() != "" {
		if err := loader.SetConfigFilePath(flag.Value.String()); err != nil {
			return err
		}
	}
	if flag := cmd.Flags().Lookup(LogLevelFlag); flag != nil {
		if err := loader.BindFlag("logger.level", flag); err != nil {
			return err
		}
	}
	for key, name := range bindings {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := config.SetupLogger(cfg.Logger); err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, cfg)
}
