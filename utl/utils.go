package utl

import (
	"path/filepath"
	"runtime"
)

// Root 返回项目的根目录路径
// 通过获取当前文件的运行时信息来定位项目根目录
func Root() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(filename))
}
