package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger 设置全局日志级别与输出格式
func SetupLogger(cfg Logger) error {
	return setupLogger(cfg, os.Stderr)
}

func setupLogger(cfg Logger, out io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
	return nil
}
