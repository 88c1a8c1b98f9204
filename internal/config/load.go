package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 TXVERIFY_LOGGER_LEVEL
const EnvPrefix = "TXVERIFY"

// Loader 按 默认值 < 配置文件 < 环境变量 < 命令行参数 的顺序合并配置
type Loader struct {
	envPrefix      string
	configFilePath string
	viper          *viper.Viper
}

// NewLoader 创建 Loader
func NewLoader(envPrefix string) *Loader {
	return &Loader{
		envPrefix: envPrefix,
		viper:     viper.New(),
	}
}

// SetConfigFilePath 设置配置文件，仅支持 yaml/yml/json
func (l *Loader) SetConfigFilePath(path string) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "yaml" && ext != "yml" && ext != "json" {
		return errors.Errorf("unsupported config file extension: %s", ext)
	}
	l.configFilePath = path
	return nil
}

// BindFlag 把配置键绑定到命令行参数；只有显式设置的参数会覆盖其他来源
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Errorf("flag for %s is not defined", key)
	}
	if err := l.viper.BindPFlag(key, flag); err != nil {
		return errors.Wrapf(err, "failed to bind flag %s", flag.Name)
	}
	return nil
}

// Load 合并所有来源并返回配置
func (l *Loader) Load() (Config, error) {
	if err := l.setDefaults(); err != nil {
		return Config{}, err
	}

	l.viper.SetEnvPrefix(l.envPrefix)
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.viper.AutomaticEnv()

	if err := l.loadFromFile(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return cfg, nil
}

// setDefaults 注册所有键的默认值，AutomaticEnv 只对已知键生效
func (l *Loader) setDefaults() error {
	defaults := map[string]any{}
	if err := mapstructure.Decode(DefaultConfig(), &defaults); err != nil {
		return errors.Wrap(err, "failed to decode default config")
	}
	setDefaults(l.viper, "", defaults)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, values map[string]any) {
	for key, value := range values {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			setDefaults(v, key, nested)
			continue
		}
		v.SetDefault(key, value)
	}
}

func (l *Loader) loadFromFile() error {
	if l.configFilePath == "" {
		return nil
	}
	if _, err := os.Stat(l.configFilePath); os.IsNotExist(err) {
		log.Warn().Str("path", l.configFilePath).Msg("Config file not found, using defaults")
		return nil
	}

	l.viper.SetConfigFile(l.configFilePath)
	if err := l.viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read config file")
	}
	log.Debug().Str("path", l.configFilePath).Msg("Loaded config from file")
	return nil
}
