package gql

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// fieldGroup 按响应键合并后的字段集合
type fieldGroup struct {
	keys   []string
	fields map[string][]*ast.Field
}

func (my *fieldGroup) add(f *ast.Field) {
	key := f.Alias
	if key == "" {
		key = f.Name
	}
	if _, ok := my.fields[key]; !ok {
		my.keys = append(my.keys, key)
	}
	my.fields[key] = append(my.fields[key], f)
}

// collectFields 展开片段并处理 @skip/@include，typeName 用于匹配片段的类型条件
func collectFields(doc *ast.QueryDocument, set ast.SelectionSet, typeName string, vars map[string]any) *fieldGroup {
	g := &fieldGroup{fields: map[string][]*ast.Field{}}
	visited := map[string]bool{}
	var walk func(ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *ast.Field:
				if included(s.Directives, vars) {
					g.add(s)
				}
			case *ast.InlineFragment:
				if included(s.Directives, vars) && applies(s.TypeCondition, typeName) {
					walk(s.SelectionSet)
				}
			case *ast.FragmentSpread:
				if visited[s.Name] || !included(s.Directives, vars) {
					continue
				}
				visited[s.Name] = true
				def := doc.Fragments.ForName(s.Name)
				if def != nil && applies(def.TypeCondition, typeName) {
					walk(def.SelectionSet)
				}
			}
		}
	}
	walk(set)
	return g
}

// subSelection 合并同一响应键下所有字段的子选择
func subSelection(fields []*ast.Field) ast.SelectionSet {
	if len(fields) == 1 {
		return fields[0].SelectionSet
	}
	var set ast.SelectionSet
	for _, f := range fields {
		set = append(set, f.SelectionSet...)
	}
	return set
}

func applies(condition, typeName string) bool {
	return condition == "" || condition == typeName
}

func included(directives ast.DirectiveList, vars map[string]any) bool {
	if d := directives.ForName("skip"); d != nil && condition(d, vars) {
		return false
	}
	if d := directives.ForName("include"); d != nil && !condition(d, vars) {
		return false
	}
	return true
}

func condition(d *ast.Directive, vars map[string]any) bool {
	arg := d.Arguments.ForName("if")
	if arg == nil || arg.Value == nil {
		return false
	}
	v, err := arg.Value.Value(vars)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
