package std

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/utl"
)

// Konfig 配置管理器，包装了koanf.Koanf
type Konfig struct {
	*koanf.Koanf
	options *konfigOptions
}

// KonfigOption 定义配置选项函数类型
type KonfigOption func(*konfigOptions)

// konfigOptions 保存koanf的配置选项
type konfigOptions struct {
	configType string
	envPrefix  string
	envFile    string
	filePath   string
	delim      string
}

// defaults 内置默认值，优先级最低
var defaults = map[string]interface{}{
	"mode":             "dev",
	"name":             "pgql",
	"host":             "127.0.0.1",
	"port":             "8080",
	"log.level":        "info",
	"db.max-idle":      5,
	"db.max-open":      16,
	"db.max-lifetime":  "5m",
	"graphql.endpoint": "/graphql",
}

// WithFilePath 设置配置文件路径
func WithFilePath(filePath string) KonfigOption {
	return func(options *konfigOptions) {
		if filePath != "" {
			options.filePath = filePath
			options.configType = strings.TrimPrefix(filepath.Ext(filePath), ".")
		}
	}
}

// WithEnvPrefix 设置环境变量前缀
func WithEnvPrefix(prefix string) KonfigOption {
	return func(options *konfigOptions) {
		options.envPrefix = prefix
	}
}

// WithEnvFile 设置.env文件路径，文件不存在时跳过
func WithEnvFile(envFile string) KonfigOption {
	return func(options *konfigOptions) {
		options.envFile = envFile
	}
}

// NewKonfig 按 默认值 -> .env -> 配置文件 -> 环境变量 的顺序加载配置
func NewKonfig(opts ...KonfigOption) (*Konfig, error) {
	options := &konfigOptions{
		configType: "yaml",
		envPrefix:  "PGQL",
		envFile:    filepath.Join(utl.Root(), ".env"),
		delim:      ".",
	}
	for _, opt := range opts {
		opt(options)
	}

	k := koanf.New(options.delim)
	if err := k.Load(confmap.Provider(defaults, options.delim), nil); err != nil {
		return nil, fmt.Errorf("加载默认配置失败: %w", err)
	}

	// 加载环境变量文件(可选)
	if err := loadEnvFile(options.envFile); err != nil {
		return nil, fmt.Errorf("加载环境变量文件: %w", err)
	}

	if options.filePath != "" {
		if err := loadConfigFile(k, options); err != nil {
			return nil, err
		}
	}

	// 最后加载环境变量，确保环境变量优先级最高
	prefix := options.envPrefix + "_"
	envProvider := env.Provider(prefix, options.delim, func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", options.delim, -1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	return &Konfig{Koanf: k, options: options}, nil
}

// Unmarshal 使用mapstructure标签解析全部配置
func (my *Konfig) Unmarshal(out interface{}) error {
	return my.UnmarshalWithConf("", out, koanf.UnmarshalConf{Tag: "mapstructure"})
}

// loadEnvFile 加载环境变量文件(可选)
func loadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("加载.env文件失败: %w", err)
	}
	return nil
}

// loadConfigFile 加载配置文件
func loadConfigFile(k *koanf.Koanf, options *konfigOptions) error {
	var parser koanf.Parser
	switch options.configType {
	case "yaml", "yml":
		parser = yaml.Parser()
	default:
		return fmt.Errorf("不支持的配置文件类型: %s", options.configType)
	}

	if err := k.Load(file.Provider(options.filePath), parser); err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}

	log.Info().Str("file", options.filePath).Msg("配置文件已加载")
	return nil
}
