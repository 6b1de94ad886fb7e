package std

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type (
	// Pool 共享连接池，Acquire在连接耗尽时阻塞直到ctx结束
	Pool interface {
		Acquire(ctx context.Context) (Conn, error)
	}

	// Conn 从连接池借出的单个连接，用完必须Release
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Release() error
	}

	// Rows 查询结果游标，*sql.Rows 即满足该接口
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	// Pinger 可探测连通性的资源，用于就绪检查
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// SQLPool 基于gorm底层database/sql连接池的Pool实现
type SQLPool struct {
	db *sql.DB
}

// NewPool 从gorm实例取出database/sql连接池
func NewPool(db *gorm.DB) (*SQLPool, error) {
	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}
	return &SQLPool{db: sqlDb}, nil
}

// Acquire 借出一个专用连接
func (my *SQLPool) Acquire(ctx context.Context) (Conn, error) {
	c, err := my.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接失败: %w", err)
	}
	return &sqlConn{conn: c}, nil
}

// Ping 检查数据库连通性
func (my *SQLPool) Ping(ctx context.Context) error {
	return my.db.PingContext(ctx)
}

type sqlConn struct {
	conn *sql.Conn
}

func (my *sqlConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := my.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (my *sqlConn) Release() error {
	return my.conn.Close()
}
