package pooltest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/texthtml/pgql/std"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLMock 通过gorm postgres驱动和sqlmock构造真实的 std.SQLPool
// 查询文本按全文匹配，用于校验发往数据库的SQL原文
func NewSQLMock(t testing.TB) (*std.SQLPool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err, "创建mock失败")
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "创建GORM连接失败")

	pool, err := std.NewPool(gormDB)
	require.NoError(t, err)
	return pool, mock
}
