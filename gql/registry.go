package gql

import (
	"slices"

	"github.com/samber/lo"
	"github.com/texthtml/pgql/introspect"
)

// ScalarKind 字段声明的标量类型，需要新类型时在此扩展
type ScalarKind int

const (
	ScalarInt ScalarKind = iota + 1
	ScalarFloat
	ScalarString
	ScalarBoolean
)

// String 返回GraphQL中的类型名
func (my ScalarKind) String() string {
	switch my {
	case ScalarInt:
		return SCALAR_INT
	case ScalarFloat:
		return SCALAR_FLOAT
	case ScalarString:
		return SCALAR_STRING
	case ScalarBoolean:
		return SCALAR_BOOLEAN
	}
	return "Unknown"
}

// FieldDescriptor 一个可解析字段
type FieldDescriptor struct {
	Name     string
	Type     ScalarKind
	Comment  string
	Resolver Resolver
}

// PublishedField 对外发布的字段名与声明类型，Comment 写入SDL行尾
type PublishedField struct {
	Name    string
	Type    ScalarKind
	Comment string
}

// FieldFactory 根据关系生成字段描述，用于替换默认解析器
type FieldFactory func(rel introspect.Relation) *FieldDescriptor

// FieldRegistry 字段名到解析器的映射，构建后只读
type FieldRegistry struct {
	typeName string
	fields   map[string]*FieldDescriptor
}

// NewFieldRegistry 按关系顺序注册字段，同名关系后者覆盖前者
func NewFieldRegistry(typeName string, relations []introspect.Relation, factory FieldFactory) *FieldRegistry {
	if factory == nil {
		factory = PlaceholderField
	}
	fields := make(map[string]*FieldDescriptor, len(relations))
	for _, rel := range relations {
		d := factory(rel)
		d.Name = rel.Name
		fields[rel.Name] = d
	}
	return &FieldRegistry{typeName: typeName, fields: fields}
}

// NewRegistry 使用占位解析器为内省结果构建Query字段表
func NewRegistry(in *introspect.Introspection) *FieldRegistry {
	return NewFieldRegistry(TYPE_QUERY, in.Relations(), PlaceholderField)
}

// TypeName 返回对象类型名
func (my *FieldRegistry) TypeName() string {
	return my.typeName
}

// Len 返回字段数量
func (my *FieldRegistry) Len() int {
	return len(my.fields)
}

// Lookup 按名称精确查找字段
func (my *FieldRegistry) Lookup(name string) (*FieldDescriptor, bool) {
	d, ok := my.fields[name]
	return d, ok
}

// Publish 返回按字段名排序的字段列表
func (my *FieldRegistry) Publish() []PublishedField {
	keys := lo.Keys(my.fields)
	slices.Sort(keys)
	return lo.Map(keys, func(name string, _ int) PublishedField {
		d := my.fields[name]
		return PublishedField{Name: name, Type: d.Type, Comment: d.Comment}
	})
}
