package std

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/texthtml/pgql/log"
)

var (
	// Version 当前版本号
	Version = "V0.0.0"
	// GitCommit Git提交哈希
	GitCommit = "Unknown"

	// 路径规范化正则表达式
	reg = regexp.MustCompile(`/+`)
)

// Plugin 插件接口
type Plugin interface {
	// Base 插件基础路径
	Base() string
	// Init 初始化插件
	Init(fiber.Router)
}

// Bootstrap 挂载插件并在启动阶段监听端口
func Bootstrap(l Lifecycle, c *Config, a *fiber.App, plugins []Plugin) {
	routers := map[string]fiber.Router{"/": a}
	getRouter := func(basePath string) fiber.Router {
		// 合并连续斜杠并去掉末尾斜杠
		base := "/" + strings.Trim(reg.ReplaceAllString(basePath, "/"), "/")
		if r, exists := routers[base]; exists {
			return r
		}
		r := a.Group(base)
		routers[base] = r
		return r
	}

	for _, p := range plugins {
		p.Init(getRouter(p.Base()))
	}

	l.Append(func(ctx context.Context) error {
		// 同步绑定端口，端口被占用时启动直接失败
		ln, err := net.Listen("tcp", c.Addr())
		if err != nil {
			return fmt.Errorf("%v 监听 %s 失败: %w", c.Name, c.Addr(), err)
		}
		go func() {
			if err := a.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
				log.Error().Err(err).Msg("服务异常退出")
			}
		}()
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("version", Version).
			Str("commit", GitCommit).
			Msgf("%v 已启动", c.Name)
		return nil
	}, func(ctx context.Context) error {
		err := a.ShutdownWithContext(ctx)
		log.Info().Msgf("%v 已关闭", c.Name)
		return err
	})
}
