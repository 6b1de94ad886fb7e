package std

import "context"

// Lifecycle 生命周期接口，start或stop可以为nil
type Lifecycle interface {
	Append(start, stop func(context.Context) error)
}
