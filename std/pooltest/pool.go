// Package pooltest 提供按SQL文本编排结果的内存连接池，供单元测试替代真实数据库
package pooltest

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/texthtml/pgql/std"
)

// Handler 根据参数返回结果行
type Handler func(ctx context.Context, args []any) ([][]any, error)

// Call 记录一次查询
type Call struct {
	Query string
	Args  []any
}

// Pool 可编排的 std.Pool 实现
type Pool struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call

	// AcquireFunc 非空时在每次Acquire前调用，返回错误即模拟取连接失败
	AcquireFunc func(ctx context.Context) error

	acquired atomic.Int64
	released atomic.Int64
}

var _ std.Pool = (*Pool)(nil)

// New 创建空连接池，未编排的查询都会返回错误
func New() *Pool {
	return &Pool{handlers: make(map[string]Handler)}
}

// On 为查询文本注册处理函数
func (my *Pool) On(query string, h Handler) *Pool {
	my.mu.Lock()
	defer my.mu.Unlock()
	my.handlers[query] = h
	return my
}

// Returns 为查询文本注册固定结果
func (my *Pool) Returns(query string, rows ...[]any) *Pool {
	return my.On(query, func(context.Context, []any) ([][]any, error) {
		return rows, nil
	})
}

// Fails 让查询固定返回错误
func (my *Pool) Fails(query string, err error) *Pool {
	return my.On(query, func(context.Context, []any) ([][]any, error) {
		return nil, err
	})
}

// Calls 返回已执行查询的快照
func (my *Pool) Calls() []Call {
	my.mu.Lock()
	defer my.mu.Unlock()
	return append([]Call(nil), my.calls...)
}

// Outstanding 返回尚未归还的连接数
func (my *Pool) Outstanding() int64 {
	return my.acquired.Load() - my.released.Load()
}

func (my *Pool) Acquire(ctx context.Context) (std.Conn, error) {
	if my.AcquireFunc != nil {
		if err := my.AcquireFunc(ctx); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	my.acquired.Add(1)
	return &conn{pool: my}, nil
}

type conn struct {
	pool     *Pool
	released bool
}

func (my *conn) Query(ctx context.Context, query string, args ...any) (std.Rows, error) {
	if my.released {
		return nil, fmt.Errorf("pooltest: 连接已归还")
	}
	p := my.pool
	p.mu.Lock()
	h, ok := p.handlers[query]
	p.calls = append(p.calls, Call{Query: query, Args: args})
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("pooltest: 未编排的查询 %q", query)
	}
	data, err := h(ctx, args)
	if err != nil {
		return nil, err
	}
	return &rows{data: data, pos: -1}, nil
}

func (my *conn) Release() error {
	if !my.released {
		my.released = true
		my.pool.released.Add(1)
	}
	return nil
}

type rows struct {
	data   [][]any
	pos    int
	closed bool
}

func (my *rows) Next() bool {
	if my.closed || my.pos+1 >= len(my.data) {
		return false
	}
	my.pos++
	return true
}

// Scan 按位置赋值，值类型可转换为目标类型即可
func (my *rows) Scan(dest ...any) error {
	if my.pos < 0 || my.pos >= len(my.data) {
		return fmt.Errorf("pooltest: Scan 调用前没有 Next")
	}
	row := my.data[my.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("pooltest: 期望 %d 列, 实际 %d 列", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("pooltest: 第 %d 列目标不是指针", i)
		}
		elem := target.Elem()
		if row[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(row[i])
		if !v.Type().ConvertibleTo(elem.Type()) {
			return fmt.Errorf("pooltest: 第 %d 列 %T 无法转换为 %s", i, row[i], elem.Type())
		}
		elem.Set(v.Convert(elem.Type()))
	}
	return nil
}

func (my *rows) Err() error { return nil }

func (my *rows) Close() error {
	my.closed = true
	return nil
}
