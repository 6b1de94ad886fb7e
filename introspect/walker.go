package introspect

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/std"
	"golang.org/x/sync/errgroup"
)

// 内省使用的SQL，文本需与线上保持一致
const (
	RelationsSQL    = "select table_name as name from information_schema.tables where table_schema = $1::text"
	DatabaseNameSQL = "select current_database()"
	SchemaNamesSQL  = "select description from pg_shdescription join pg_database on objoid = pg_database.oid where datname = $1"
)

// DefaultSchema 数据库没有注释时使用的schema
const DefaultSchema = "public"

// Walker 遍历数据库目录生成Database
type Walker struct {
	pool std.Pool
}

// NewWalker 创建内省遍历器
func NewWalker(pool std.Pool) *Walker {
	return &Walker{pool: pool}
}

// DatabaseName 查询当前数据库名
func (my *Walker) DatabaseName(ctx context.Context) (string, error) {
	var name string
	err := my.withConn(ctx, StageDatabase, "", func(c std.Conn) error {
		return std.MustScanOne(ctx, c, DatabaseNameSQL, nil, &name)
	})
	return name, err
}

// SchemaNames 读取数据库注释作为逗号分隔的schema列表，没有注释时为 ["public"]
func (my *Walker) SchemaNames(ctx context.Context, database string) ([]string, error) {
	var comment string
	found := false
	err := my.withConn(ctx, StageSchemas, database, func(c std.Conn) (err error) {
		found, err = std.ScanOne(ctx, c, SchemaNamesSQL, []any{database}, &comment)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{DefaultSchema}, nil
	}
	// 不做trim，写错的名字只会查不到关系
	return strings.Split(comment, ","), nil
}

// Relations 查询schema下的表和视图，保持数据库返回的顺序
func (my *Walker) Relations(ctx context.Context, schema string) ([]Relation, error) {
	var list []Relation
	err := my.withConn(ctx, StageRelation, schema, func(c std.Conn) (err error) {
		rows, err := c.Query(ctx, RelationsSQL, schema)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, rows.Close())
		}()
		for rows.Next() {
			r := Relation{Schema: schema}
			if err = rows.Scan(&r.Name); err != nil {
				return err
			}
			list = append(list, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Build 完成一次内省：数据库名 -> schema列表 -> 并发查询各schema的关系
func (my *Walker) Build(ctx context.Context) (*Database, error) {
	name, err := my.DatabaseName(ctx)
	if err != nil {
		return nil, err
	}

	names, err := my.SchemaNames(ctx, name)
	if err != nil {
		return nil, err
	}

	// 按输入下标写回，结果顺序与完成先后无关
	schemas := make([]Schema, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, schema := range names {
		g.Go(func() error {
			relations, err := my.Relations(gctx, schema)
			if err != nil {
				return err
			}
			schemas[i] = Schema{Name: schema, Relations: relations}
			log.Debug().Str("schema", schema).Int("relations", len(relations)).Msg("schema内省完成")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Database{Name: name, Schemas: schemas}, nil
}

func (my *Walker) withConn(ctx context.Context, stage, target string, fn func(std.Conn) error) error {
	c, err := my.pool.Acquire(ctx)
	if err != nil {
		return fatal(StageConnect, target, err)
	}
	err = fn(c)
	if rerr := c.Release(); err == nil {
		err = rerr
	}
	if err != nil {
		return fatal(stage, target, err)
	}
	return nil
}

// New 执行内省并包装为Introspection
func New(ctx context.Context, w *Walker) (*Introspection, error) {
	db, err := w.Build(ctx)
	if err != nil {
		return nil, err
	}
	return &Introspection{Database: db}, nil
}

// NewIntrospection 启动时执行一次内省，并记录耗时与各schema关系数量
func NewIntrospection(pool std.Pool, m *std.Metrics) (*Introspection, error) {
	start := time.Now()
	in, err := New(context.Background(), NewWalker(pool))
	if err != nil {
		log.Error().Err(err).Msg("数据库内省失败")
		return nil, err
	}

	if m != nil {
		m.IntrospectionDuration.Set(time.Since(start).Seconds())
		for _, s := range in.Database.Schemas {
			m.IntrospectedRelations.WithLabelValues(s.Name).Set(float64(len(s.Relations)))
		}
	}
	log.Info().
		Str("database", in.Database.Name).
		Int("schemas", len(in.Database.Schemas)).
		Int("relations", len(in.Relations())).
		Dur("elapsed", time.Since(start)).
		Msg("数据库内省完成")
	return in, nil
}
