package gql

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/texthtml/pgql/gql/internal/intro"
	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/std"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

// 请求和结果类型定义
type (
	// Request GraphQL请求
	Request struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName,omitempty"`
		Variables     map[string]any `json:"variables,omitempty"`
	}

	// Response GraphQL结果，解析或校验失败时只有errors
	Response struct {
		Data   any           `json:"data,omitempty"`
		Errors gqlerror.List `json:"errors,omitempty"`
	}
)

// Executor GraphQL执行器
type Executor struct {
	query   *Query
	schema  *ast.Schema
	intro   *intro.Handler
	metrics *std.Metrics
}

// NewExecutor 渲染并加载schema，创建执行器
func NewExecutor(q *Query, m *std.Metrics) (*Executor, error) {
	s, err := NewRenderer(q).Schema()
	if err != nil {
		return nil, err
	}
	return &Executor{query: q, schema: s, intro: intro.New(s), metrics: m}, nil
}

// Schema 返回已加载的schema
func (my *Executor) Schema() *ast.Schema {
	return my.schema
}

// Execute 执行GraphQL查询
func (my *Executor) Execute(ctx context.Context, req Request, rc RequestContext) (r Response) {
	// 解析并校验查询
	doc, errs := gqlparser.LoadQuery(my.schema, req.Query)
	if len(errs) > 0 {
		r.Errors = errs
		return
	}

	op, err := selectOperation(doc, req.OperationName)
	if err != nil {
		r.Errors = gqlerror.List{err}
		return
	}

	vars, e := validator.VariableValues(my.schema, op, req.Variables)
	if e != nil {
		r.Errors = gqlerror.List{asGQLError(e)}
		return
	}

	r.Data, r.Errors = my.executeQuery(ctx, doc, op, vars, rc)
	return
}

// executeQuery 并发解析根字段，单个字段失败只影响自身
func (my *Executor) executeQuery(
	ctx context.Context, doc *ast.QueryDocument, op *ast.OperationDefinition, vars map[string]any, rc RequestContext,
) (*Object, gqlerror.List) {
	name := my.query.Name()
	group := collectFields(doc, op.SelectionSet, name, vars)

	values := make([]any, len(group.keys))
	failures := make([]error, len(group.keys))

	var wg conc.WaitGroup
	for i, key := range group.keys {
		fields := group.fields[key]
		f := fields[0]
		switch f.Name {
		case FIELD_TYPENAME:
			values[i] = name
		case FIELD_SCHEMA:
			values[i] = my.project(doc, my.intro.Schema(), subSelection(fields), vars)
		case FIELD_TYPE:
			typeName, _ := f.ArgumentMap(vars)["name"].(string)
			values[i] = my.project(doc, my.intro.Type(typeName), subSelection(fields), vars)
		default:
			wg.Go(func() {
				values[i], failures[i] = my.resolve(ctx, f.Name, rc)
			})
		}
	}
	// 分发故障需要以原始类型继续向上抛出
	if p := wg.WaitAndRecover(); p != nil {
		panic(p.Value)
	}

	data := NewObject(len(group.keys))
	var errs gqlerror.List
	for i, key := range group.keys {
		data.Set(key, values[i])
		if failures[i] != nil {
			f := group.fields[key][0]
			errs = append(errs, fieldError(failures[i], key, f))
		}
	}
	return data, errs
}

// resolve 分发单个字段并记录指标
func (my *Executor) resolve(ctx context.Context, field string, rc RequestContext) (any, error) {
	start := time.Now()
	v, err := my.query.Resolve(ctx, field, rc)
	status := "ok"
	if err != nil {
		status = "error"
		log.Warn().Err(err).Str("field", field).Msg("字段解析失败")
	}
	if my.metrics != nil {
		my.metrics.FieldResolutions.WithLabelValues(field, status).Inc()
		my.metrics.FieldDuration.WithLabelValues(field).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// project 按选择集裁剪内省对象
func (my *Executor) project(doc *ast.QueryDocument, v any, set ast.SelectionSet, vars map[string]any) any {
	switch x := v.(type) {
	case intro.Thunk:
		return my.project(doc, x(), set, vars)
	case intro.Object:
		if x == nil {
			return nil
		}
		typeName, _ := x[FIELD_TYPENAME].(string)
		group := collectFields(doc, set, typeName, vars)
		obj := NewObject(len(group.keys))
		for _, key := range group.keys {
			fields := group.fields[key]
			obj.Set(key, my.project(doc, x[fields[0].Name], subSelection(fields), vars))
		}
		return obj
	case []any:
		list := make([]any, len(x))
		for i, item := range x {
			list[i] = my.project(doc, item, set, vars)
		}
		return list
	default:
		return x
	}
}

func selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, *gqlerror.Error) {
	if name == "" {
		if len(doc.Operations) != 1 {
			return nil, gqlerror.Errorf("must provide operation name if query contains multiple operations")
		}
		return doc.Operations[0], nil
	}
	op := doc.Operations.ForName(name)
	if op == nil {
		return nil, gqlerror.Errorf("Unknown operation named %q.", name)
	}
	return op, nil
}

func fieldError(err error, key string, f *ast.Field) *gqlerror.Error {
	e := &gqlerror.Error{Message: err.Error(), Path: ast.Path{ast.PathName(key)}}
	if f.Position != nil {
		e.Locations = []gqlerror.Location{{Line: f.Position.Line, Column: f.Position.Column}}
	}
	return e
}

func asGQLError(err error) *gqlerror.Error {
	var e *gqlerror.Error
	if errors.As(err, &e) {
		return e
	}
	return &gqlerror.Error{Message: err.Error()}
}
