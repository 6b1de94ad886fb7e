package std

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNoRows 查询没有返回任何行
var ErrNoRows = sql.ErrNoRows

// ScanOne 执行查询并把第一行扫描到dest，没有行时返回 found=false
func ScanOne(ctx context.Context, c Conn, query string, args []any, dest ...any) (found bool, err error) {
	rows, err := c.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	if !rows.Next() {
		return false, rows.Err()
	}
	if err = rows.Scan(dest...); err != nil {
		return false, err
	}
	return true, rows.Err()
}

// MustScanOne 与ScanOne相同，但没有行时返回ErrNoRows
func MustScanOne(ctx context.Context, c Conn, query string, args []any, dest ...any) error {
	found, err := ScanOne(ctx, c, query, args, dest...)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoRows
	}
	return nil
}

// WithConn 借出连接，执行fn后归还
func WithConn(ctx context.Context, p Pool, fn func(Conn) error) (err error) {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, c.Release())
	}()
	return fn(c)
}
