package ioc

import (
	"context"

	"github.com/texthtml/pgql/std"
	"go.uber.org/fx"
)

// fxAdapter 把fx生命周期适配为 std.Lifecycle
type fxAdapter struct {
	fx fx.Lifecycle
}

func newAdapter(fx fx.Lifecycle) std.Lifecycle {
	return &fxAdapter{fx: fx}
}

func (my *fxAdapter) Append(start, stop func(context.Context) error) {
	my.fx.Append(fx.Hook{
		OnStart: start,
		OnStop:  stop,
	})
}
