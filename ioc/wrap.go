package ioc

import (
	"github.com/texthtml/pgql/std"
	"go.uber.org/fx"
)

// 对 fx 的轻量封装，模块注册只依赖这里

// Option / Annotation 类型别名，避免业务直接依赖 fx 包
type Option = fx.Option
type Annotation = fx.Annotation

// Options 聚合
func Options(opts ...Option) Option { return fx.Options(opts...) }

// Module 模块封装
func Module(name string, opts ...Option) Option { return fx.Module(name, opts...) }

// Provide 构造器注册
func Provide(constructors ...any) Option { return fx.Provide(constructors...) }

// Invoke 触发调用
func Invoke(funcs ...any) Option { return fx.Invoke(funcs...) }

// Supply 直接提供值
func Supply(values ...any) Option { return fx.Supply(values...) }

// Annotate 注解封装（As/ResultTags/ParamTags 等）
func Annotate(target any, anns ...Annotation) any { return fx.Annotate(target, anns...) }

// As 结果转换为接口类型
func As(i ...any) Annotation { return fx.As(i...) }

// ResultTags 标注结果 Tags
func ResultTags(tags ...string) Annotation { return fx.ResultTags(tags...) }

// ParamTags 标注参数 Tags
func ParamTags(tags ...string) Annotation { return fx.ParamTags(tags...) }

// Plugin 将构造结果加入 plugin 分组，由 std.Bootstrap 统一挂载
func Plugin(target any) any {
	return fx.Annotate(target, fx.As(new(std.Plugin)), fx.ResultTags(`group:"plugin"`))
}
