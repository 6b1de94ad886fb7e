package gql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/texthtml/pgql/gql/renderer"
	"github.com/texthtml/pgql/log"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// 分隔线和描述常量
const (
	DESC_SCHEMA_TITLE = "pgql GraphQL Schema"
	SECTION_QUERY     = "查询根类型"
)

// GraphQL名称规则
var nameRegexp = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// Renderer 负责将动态根类型渲染为GraphQL schema
type Renderer struct {
	query *Query
	sb    *strings.Builder
}

// NewRenderer 创建新的Schema渲染器
func NewRenderer(q *Query) *Renderer {
	return &Renderer{query: q, sb: &strings.Builder{}}
}

// Generate 生成SDL文本，字段顺序即发布顺序
func (my *Renderer) Generate() (string, error) {
	my.sb = &strings.Builder{}

	fields := my.query.Fields()
	if len(fields) == 0 {
		// GraphQL对象类型至少需要一个字段，空目录按启动失败处理
		return "", fmt.Errorf("类型 %s 没有任何字段（GraphQL对象类型至少需要一个字段，空目录不会启动服务），请检查数据库注释中的schema配置", my.query.Name())
	}
	// 任一关系名不合法即整体失败，不跳过
	if invalid := invalidNames(fields); len(invalid) > 0 {
		return "", fmt.Errorf("以下关系名不是合法的GraphQL字段名: %s", strings.Join(invalid, ", "))
	}

	my.writeLine("# ", DESC_SCHEMA_TITLE, "\n")
	my.writeLine("# ", SECTION_QUERY)
	my.writeLine("type ", my.query.Name(), " {")
	for _, f := range fields {
		var options []renderer.Option
		if f.Comment != "" {
			options = append(options, renderer.WithComment(f.Comment))
		}
		my.writeLine(renderer.MakeField(f.Name, f.Type.String(), options...))
	}
	my.writeLine("}")

	return my.sb.String(), nil
}

// Schema 生成并加载schema
func (my *Renderer) Schema() (*ast.Schema, error) {
	sdl, err := my.Generate()
	if err != nil {
		return nil, err
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "pgql.graphql", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("加载schema失败: %w", err)
	}
	log.Debug().Str("sdl", sdl).Msg("schema已生成")
	return schema, nil
}

// writeLine 写入一行文本（自动添加换行符）
func (my *Renderer) writeLine(parts ...string) {
	for _, part := range parts {
		my.sb.WriteString(part)
	}
	my.sb.WriteString("\n")
}

// invalidNames 找出无法作为字段名发布的关系名，"__"前缀为内省保留
func invalidNames(fields []PublishedField) []string {
	invalid := slice.Filter(fields, func(_ int, f PublishedField) bool {
		return !nameRegexp.MatchString(f.Name) || strings.HasPrefix(f.Name, "__")
	})
	return slice.Map(invalid, func(_ int, f PublishedField) string {
		return fmt.Sprintf("%q", f.Name)
	})
}
