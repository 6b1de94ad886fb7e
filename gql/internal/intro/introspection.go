// Package intro 把 ast.Schema 转换为 __schema / __type 查询所需的对象树
// 对象中的 Thunk 只在被选中时求值，类型之间的循环引用因此不会展开
package intro

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
)

// Thunk 延迟求值的字段值
type Thunk func() any

// Object 内省对象
type Object = map[string]any

// Handler GraphQL内省对象构造器
type Handler struct {
	schema *ast.Schema
}

// New 创建一个新的内省对象构造器
func New(schema *ast.Schema) *Handler {
	return &Handler{schema: schema}
}

// Schema 返回 __schema 对象
func (my *Handler) Schema() Object {
	s := my.schema
	return Object{
		"__typename":  "__Schema",
		"description": nullable(s.Description),
		"types": Thunk(func() any {
			names := lo.Keys(s.Types)
			sort.Strings(names)
			return lo.Map(names, func(name string, _ int) any {
				return my.fullType(s.Types[name])
			})
		}),
		"queryType":        my.definition(s.Query),
		"mutationType":     my.definition(s.Mutation),
		"subscriptionType": my.definition(s.Subscription),
		"directives": Thunk(func() any {
			names := lo.Keys(s.Directives)
			sort.Strings(names)
			return lo.Map(names, func(name string, _ int) any {
				return my.directive(s.Directives[name])
			})
		}),
	}
}

// Type 返回 __type(name:) 对象，类型不存在时为nil
func (my *Handler) Type(name string) any {
	def, ok := my.schema.Types[name]
	if !ok {
		return nil
	}
	return my.fullType(def)
}

func (my *Handler) definition(def *ast.Definition) any {
	if def == nil {
		return nil
	}
	return my.fullType(def)
}

func (my *Handler) fullType(def *ast.Definition) Object {
	obj := Object{
		"__typename":     "__Type",
		"kind":           string(def.Kind),
		"name":           def.Name,
		"description":    nullable(def.Description),
		"specifiedByURL": nil,
		"ofType":         nil,
		"fields":         nil,
		"inputFields":    nil,
		"interfaces":     nil,
		"possibleTypes":  nil,
		"enumValues":     nil,
	}

	switch def.Kind {
	case ast.Object, ast.Interface:
		obj["fields"] = Thunk(func() any {
			fields := lo.Filter(def.Fields, func(f *ast.FieldDefinition, _ int) bool {
				return !strings.HasPrefix(f.Name, "__")
			})
			return lo.Map(fields, func(f *ast.FieldDefinition, _ int) any {
				return my.field(f)
			})
		})
		obj["interfaces"] = Thunk(func() any {
			return lo.Map(def.Interfaces, func(name string, _ int) any {
				return my.definition(my.schema.Types[name])
			})
		})
		if def.Kind == ast.Interface {
			obj["possibleTypes"] = my.possibleTypes(def)
		}
	case ast.Union:
		obj["possibleTypes"] = my.possibleTypes(def)
	case ast.Enum:
		obj["enumValues"] = Thunk(func() any {
			return lo.Map(def.EnumValues, func(v *ast.EnumValueDefinition, _ int) any {
				reason, deprecated := deprecation(v.Directives)
				return Object{
					"__typename":        "__EnumValue",
					"name":              v.Name,
					"description":       nullable(v.Description),
					"isDeprecated":      deprecated,
					"deprecationReason": reason,
				}
			})
		})
	case ast.InputObject:
		obj["inputFields"] = Thunk(func() any {
			return lo.Map(def.Fields, func(f *ast.FieldDefinition, _ int) any {
				return my.inputValue(f.Name, f.Description, f.Type, f.DefaultValue, f.Directives)
			})
		})
	}
	return obj
}

func (my *Handler) possibleTypes(def *ast.Definition) Thunk {
	return func() any {
		return lo.Map(my.schema.PossibleTypes[def.Name], func(d *ast.Definition, _ int) any {
			return my.fullType(d)
		})
	}
}

func (my *Handler) field(f *ast.FieldDefinition) Object {
	reason, deprecated := deprecation(f.Directives)
	return Object{
		"__typename":  "__Field",
		"name":        f.Name,
		"description": nullable(f.Description),
		"args": Thunk(func() any {
			return my.arguments(f.Arguments)
		}),
		"type": Thunk(func() any {
			return my.typeRef(f.Type)
		}),
		"isDeprecated":      deprecated,
		"deprecationReason": reason,
	}
}

func (my *Handler) arguments(args ast.ArgumentDefinitionList) []any {
	return lo.Map(args, func(a *ast.ArgumentDefinition, _ int) any {
		return my.inputValue(a.Name, a.Description, a.Type, a.DefaultValue, a.Directives)
	})
}

func (my *Handler) inputValue(name, description string, t *ast.Type, def *ast.Value, directives ast.DirectiveList) Object {
	reason, deprecated := deprecation(directives)
	var defaultValue any
	if def != nil {
		defaultValue = def.String()
	}
	return Object{
		"__typename":   "__InputValue",
		"name":         name,
		"description":  nullable(description),
		"defaultValue": defaultValue,
		"type": Thunk(func() any {
			return my.typeRef(t)
		}),
		"isDeprecated":      deprecated,
		"deprecationReason": reason,
	}
}

// typeRef 展开 NON_NULL / LIST 包装，命名类型返回完整定义
func (my *Handler) typeRef(t *ast.Type) any {
	if t == nil {
		return nil
	}
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return wrapper("NON_NULL", func() any { return my.typeRef(&inner) })
	}
	if t.Elem != nil {
		return wrapper("LIST", func() any { return my.typeRef(t.Elem) })
	}
	return my.definition(my.schema.Types[t.NamedType])
}

func (my *Handler) directive(d *ast.DirectiveDefinition) Object {
	return Object{
		"__typename":  "__Directive",
		"name":        d.Name,
		"description": nullable(d.Description),
		"locations": lo.Map(d.Locations, func(l ast.DirectiveLocation, _ int) any {
			return string(l)
		}),
		"args": Thunk(func() any {
			return my.arguments(d.Arguments)
		}),
		"isRepeatable": d.IsRepeatable,
	}
}

func wrapper(kind string, ofType Thunk) Object {
	return Object{
		"__typename":     "__Type",
		"kind":           kind,
		"name":           nil,
		"description":    nil,
		"specifiedByURL": nil,
		"fields":         nil,
		"inputFields":    nil,
		"interfaces":     nil,
		"possibleTypes":  nil,
		"enumValues":     nil,
		"ofType":         ofType,
	}
}

func deprecation(directives ast.DirectiveList) (any, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return nil, false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw, true
	}
	return "No longer supported", true
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
