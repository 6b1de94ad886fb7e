package std

import (
	"context"
	"fmt"

	"github.com/texthtml/pgql/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase 打开PostgreSQL连接池，连接串非法或数据库不可达时返回错误
func NewDatabase(l Lifecycle, c *Config) (*gorm.DB, error) {
	level := logger.Warn
	if c.IsDebug() {
		level = logger.Info
	}
	db, err := gorm.Open(
		postgres.Open(c.DB.Url),
		&gorm.Config{Logger: logger.Default.LogMode(level)},
	)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}
	sqlDb.SetMaxIdleConns(c.DB.MaxIdle)
	sqlDb.SetMaxOpenConns(c.DB.MaxOpen)
	sqlDb.SetConnMaxLifetime(c.DB.MaxLifetime)

	l.Append(nil, func(ctx context.Context) error {
		log.Info().Msg("关闭数据库连接池")
		return sqlDb.Close()
	})
	return db, nil
}
