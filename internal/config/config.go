// Package config 负责 txverify 的配置加载与日志初始化
package config

// Config txverify 配置
type Config struct {
	Logger   Logger   `mapstructure:"logger"`
	Fixtures Fixtures `mapstructure:"fixtures"`
	Metrics  Metrics  `mapstructure:"metrics"`
}

// Logger 日志配置
type Logger struct {
	Level              string `mapstructure:"level"`
	PrettyPrintConsole bool   `mapstructure:"pretty_print_console"`
}

// Fixtures 用例配置
type Fixtures struct {
	Path string `mapstructure:"path"`
}

// Metrics 指标配置；TextfilePath 为空时不导出
type Metrics struct {
	TextfilePath string `mapstructure:"textfile_path"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Logger: Logger{
			Level:              "info",
			PrettyPrintConsole: true,
		},
		Fixtures: Fixtures{
			Path: "testdata/fixtures",
		},
	}
}
