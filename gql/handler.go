package gql

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/texthtml/pgql/std"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

var errMissingQuery = errors.New("must provide query string")

// Handler GraphQL HTTP插件
type Handler struct {
	executor *Executor
	pool     std.Pool
	endpoint string
}

// NewHandler 创建GraphQL插件
func NewHandler(e *Executor, p std.Pool, c *std.Config) *Handler {
	return &Handler{executor: e, pool: p, endpoint: c.GraphQL.Endpoint}
}

func (my *Handler) Base() string {
	return "/"
}

func (my *Handler) Init(r fiber.Router) {
	r.Get("/", my.playground)
	r.Post("/", my.Serve)
	if my.endpoint != "" && my.endpoint != "/" {
		r.Get(my.endpoint, my.Query)
		r.Post(my.endpoint, my.Serve)
	}
}

// Serve 处理POST请求
func (my *Handler) Serve(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Response{Errors: badRequest(err)})
	}
	return my.execute(c, req)
}

// Query 处理GET请求，variables 为JSON字符串
func (my *Handler) Query(c *fiber.Ctx) error {
	req := Request{Query: c.Query("query"), OperationName: c.Query("operationName")}
	if v := c.Query("variables"); v != "" {
		if err := json.UnmarshalFromString(v, &req.Variables); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Errors: badRequest(err)})
		}
	}
	return my.execute(c, req)
}

func (my *Handler) execute(c *fiber.Ctx, req Request) error {
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(Response{Errors: badRequest(errMissingQuery)})
	}
	r := my.executor.Execute(c.UserContext(), req, RequestContext{Pool: my.pool})
	return c.JSON(r)
}

// playground 提供GraphiQL页面
func (my *Handler) playground(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(graphiql)
}

func badRequest(err error) gqlerror.List {
	return gqlerror.List{{Message: err.Error()}}
}
