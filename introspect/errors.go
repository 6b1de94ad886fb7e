package introspect

import (
	"errors"
	"fmt"
)

// 内省阶段
const (
	StageConnect  = "connect"
	StageDatabase = "database"
	StageSchemas  = "schemas"
	StageRelation = "relations"
)

// FatalError 内省过程中的任何失败，服务不能以不完整的schema启动
type FatalError struct {
	Stage  string
	Target string
	Err    error
}

func (my *FatalError) Error() string {
	if my.Target != "" {
		return fmt.Sprintf("introspection %s(%s) failed: %v", my.Stage, my.Target, my.Err)
	}
	return fmt.Sprintf("introspection %s failed: %v", my.Stage, my.Err)
}

func (my *FatalError) Unwrap() error { return my.Err }

// IsFatal 判断错误链中是否包含内省失败
func IsFatal(err error) bool {
	var e *FatalError
	return errors.As(err, &e)
}

func fatal(stage, target string, err error) error {
	var e *FatalError
	if errors.As(err, &e) {
		return err
	}
	return &FatalError{Stage: stage, Target: target, Err: err}
}
