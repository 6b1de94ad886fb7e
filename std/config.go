package std

import (
	"fmt"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 表示服务配置
type Config struct {
	Mode    string        `mapstructure:"mode"`
	Name    string        `mapstructure:"name"`
	Host    string        `mapstructure:"host" validate:"required"`
	Port    string        `mapstructure:"port" validate:"required,numeric"`
	DB      DataSource    `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	GraphQL GraphQLConfig `mapstructure:"graphql"`
}

// DataSource 数据库连接配置
type DataSource struct {
	// Url 连接串，支持 postgres:// URL 或 key=value 形式
	Url         string        `mapstructure:"url" validate:"required"`
	MaxIdle     int           `mapstructure:"max-idle" validate:"gte=0"`
	MaxOpen     int           `mapstructure:"max-open" validate:"gte=0"`
	MaxLifetime time.Duration `mapstructure:"max-lifetime"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File 非空时写入轮转文件，以下轮转参数为0时取默认值
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max-size" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max-age" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max-backups" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// GraphQLConfig GraphQL接口配置
type GraphQLConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,startswith=/"`
}

// NewConfig 从Konfig解析并校验配置
func NewConfig(k *Konfig) (*Config, error) {
	c := &Config{}
	if err := k.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return c, nil
}

// IsDebug 判断是否为开发模式
func (my *Config) IsDebug() bool {
	return my.Mode == "development" || my.Mode == "dev"
}

// Addr 返回监听地址
func (my *Config) Addr() string {
	return net.JoinHostPort(my.Host, my.Port)
}
