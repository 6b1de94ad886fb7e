package gql

import (
	"context"

	"github.com/texthtml/pgql/introspect"
	"github.com/texthtml/pgql/std"
)

// PlaceholderSQL 占位解析器执行的查询
const PlaceholderSQL = "select 2"

// RequestContext 单次请求的上下文，由传输层为每个请求构造
type RequestContext struct {
	Pool std.Pool
}

// Resolver 字段解析函数，只依赖显式传入的请求上下文
type Resolver func(ctx context.Context, rc RequestContext) (any, error)

// PlaceholderResolver 借出连接执行 select 2 并返回整数
func PlaceholderResolver(ctx context.Context, rc RequestContext) (any, error) {
	var v int32
	err := std.WithConn(ctx, rc.Pool, func(c std.Conn) error {
		return std.MustScanOne(ctx, c, PlaceholderSQL, nil, &v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// PlaceholderField 为关系生成占位字段
// TODO: 关系级查询（行数、列信息）确定语义后替换这里
func PlaceholderField(rel introspect.Relation) *FieldDescriptor {
	return &FieldDescriptor{Name: rel.Name, Type: ScalarInt, Comment: rel.Schema, Resolver: PlaceholderResolver}
}
