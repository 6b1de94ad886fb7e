package ioc

import (
	"github.com/texthtml/pgql/gql"
	"github.com/texthtml/pgql/introspect"
)

// 启动时内省数据库并生成schema，失败则容器构造失败
func init() {
	Add(Module("graphql",
		Provide(
			introspect.NewIntrospection,
			gql.NewRegistry,
			gql.NewQuery,
			gql.NewExecutor,
			Plugin(gql.NewHandler),
		),
	))
}
