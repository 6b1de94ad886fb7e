package gql

import (
	"context"
	"fmt"
)

// DispatchFault 执行阶段遇到未注册的字段
// 发布的schema与分发表来自同一个注册表，出现即为程序缺陷
type DispatchFault struct {
	TypeName string
	Field    string
}

func (my *DispatchFault) Error() string {
	return fmt.Sprintf("internal fault: field %q is not registered on type %q", my.Field, my.TypeName)
}

// Query 动态根类型，字段全部委托给注册表
type Query struct {
	registry *FieldRegistry
}

// NewQuery 创建动态根类型
func NewQuery(r *FieldRegistry) *Query {
	return &Query{registry: r}
}

// Name 返回类型名
func (my *Query) Name() string {
	return my.registry.TypeName()
}

// Fields 返回排序后的字段列表，用于发布schema
func (my *Query) Fields() []PublishedField {
	return my.registry.Publish()
}

// Resolve 分发字段解析，结果与错误原样返回；字段不存在时panic(*DispatchFault)
func (my *Query) Resolve(ctx context.Context, field string, rc RequestContext) (any, error) {
	d, ok := my.registry.Lookup(field)
	if !ok {
		panic(&DispatchFault{TypeName: my.Name(), Field: field})
	}
	return d.Resolver(ctx, rc)
}
