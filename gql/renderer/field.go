package renderer

import (
	"strings"
	"sync"
)

// Field 表示一行GraphQL字段定义
type Field struct {
	Name    string
	Type    string
	Comment string
	Indent  int
}

// Option 配置字段的函数选项
type Option func(*Field)

// WithComment 添加行尾注释
func WithComment(comment string) Option {
	return func(f *Field) {
		f.Comment = comment
	}
}

var fieldPool = sync.Pool{
	New: func() interface{} {
		return &Field{Indent: 2}
	},
}

// New 从对象池创建字段
func New(name string, typeName string, options ...Option) *Field {
	f := fieldPool.Get().(*Field)
	f.Name = name
	f.Type = typeName
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Release 重置字段并归还对象池
func Release(f *Field) {
	*f = Field{Indent: 2}
	fieldPool.Put(f)
}

// Build 生成字段定义字符串，例如 "  users: Int  # public"
func Build(f *Field) string {
	var sb strings.Builder
	sb.Grow(f.Indent + len(f.Name) + len(f.Type) + len(f.Comment) + 8)

	sb.WriteString(strings.Repeat(" ", f.Indent))
	sb.WriteString(f.Name)
	sb.WriteString(": ")
	sb.WriteString(f.Type)

	if f.Comment != "" {
		sb.WriteString("  # ")
		sb.WriteString(f.Comment)
	}
	return sb.String()
}

// MakeField 创建、构建并释放字段的便捷方法
func MakeField(name string, typeName string, options ...Option) string {
	f := New(name, typeName, options...)
	defer Release(f)
	return Build(f)
}
