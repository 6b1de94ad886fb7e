package ioc

import (
	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/std"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var options []Option

func Add(args ...Option) {
	options = append(options, args...)
}

// Get 返回全部已注册模块
func Get() Option {
	return Options(options...)
}

func init() {
	Add(
		fx.WithLogger(newEventLogger),
		Provide(
			newAdapter,
			std.NewFiber,
			std.NewMetrics,
			Plugin(std.NewHealth),
			Plugin(metricsPlugin),
		),
		Invoke(Annotate(std.Bootstrap, ParamTags(``, ``, ``, `group:"plugin"`))),
	)
}

// metricsPlugin 指标本身也作为插件挂载 /metrics
func metricsPlugin(m *std.Metrics) *std.Metrics {
	return m
}

// newEventLogger 开发模式下把容器事件写入日志
func newEventLogger(c *std.Config) fxevent.Logger {
	if !c.IsDebug() {
		return fxevent.NopLogger
	}
	return &fxevent.ConsoleLogger{W: log.Default().Zerolog()}
}
