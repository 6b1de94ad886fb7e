package ioc

import (
	"fmt"

	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/std"
)

// 配置模块
func init() {
	Add(Module("config",
		Provide(
			// filePath由调用方通过Supply提供
			Annotate(
				std.WithFilePath,
				ResultTags(`group:"konfigOptions"`),
			),
			Annotate(
				std.NewKonfig,
				ParamTags(`group:"konfigOptions"`),
			),
			std.NewConfig,
		),
		// 日志需要在其他模块构造前按配置初始化
		Invoke(setupLogger),
	))
}

// setupLogger 根据配置替换默认日志记录器
func setupLogger(c *std.Config) error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("日志级别配置错误: %w", err)
	}

	var l *log.Logger
	if c.Log.File != "" {
		l = log.NewRotateLogger(rotateOptions(c.Log)...)
		l.SetLevel(level)
	} else {
		l = log.NewLogger(log.WithLevel(level))
	}
	log.SetDefault(l)
	return nil
}

func rotateOptions(c std.LogConfig) []log.RotateOption {
	ops := []log.RotateOption{log.WithFilename(c.File), log.UseCompress(c.Compress)}
	if c.MaxSize > 0 {
		ops = append(ops, log.WithMaxSize(c.MaxSize))
	}
	if c.MaxAge > 0 {
		ops = append(ops, log.WithMaxAge(c.MaxAge))
	}
	if c.MaxBackups > 0 {
		ops = append(ops, log.WithMaxBackups(c.MaxBackups))
	}
	return ops
}
