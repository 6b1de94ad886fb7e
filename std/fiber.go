package std

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/utl"
)

// NewFiber 创建并配置一个新的fiber应用实例
func NewFiber(c *Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               c.Name,
		JSONEncoder:           utl.MarshalJSON,
		JSONDecoder:           utl.UnmarshalJSON,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(accessLog)
	// 异常恢复中间件，内部一致性故障以panic形式到达这里
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Str("request-id", c.GetRespHeader(fiber.HeaderXRequestID)).
				Msg("请求处理发生panic")
		},
	}))

	return app
}

// accessLog 记录每个请求
func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var evt *zerolog.Event
	switch {
	case err != nil:
		evt = log.Error().Err(err)
	case status >= fiber.StatusBadRequest:
		evt = log.Warn()
	default:
		evt = log.Info()
	}

	evt.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Str("ip", c.IP()).
		Dur("latency", time.Since(start)).
		Str("request-id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("fiber request")

	return err
}

// errorHandler 统一错误响应，结构与GraphQL错误列表保持一致
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"errors": []fiber.Map{{"message": err.Error()}},
	})
}
