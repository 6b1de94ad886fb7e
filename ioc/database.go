package ioc

import (
	"github.com/texthtml/pgql/std"
)

// 数据库模块
func init() {
	Add(Module("database",
		Provide(
			std.NewDatabase,
			Annotate(
				std.NewPool,
				As(new(std.Pool)),
				As(new(std.Pinger)),
			),
		),
	))
}
