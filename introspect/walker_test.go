package introspect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texthtml/pgql/std/pooltest"
)

func names(list []Relation) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Name)
	}
	return out
}

func TestSchemaNames_DefaultPublic(t *testing.T) {
	pool := pooltest.New().Returns(SchemaNamesSQL)

	list, err := NewWalker(pool).SchemaNames(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"public"}, list, "没有数据库注释时应只包含public")

	calls := pool.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"app"}, calls[0].Args, "注释查询应以数据库名为参数")
}

func TestSchemaNames_CommentIsNotTrimmed(t *testing.T) {
	pool := pooltest.New().Returns(SchemaNamesSQL, []any{"public, audit,"})

	list, err := NewWalker(pool).SchemaNames(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"public", " audit", ""}, list)
}

func TestRelations_PreservesQueryOrder(t *testing.T) {
	pool := pooltest.New().Returns(RelationsSQL, []any{"users"}, []any{"orders"}, []any{"accounts"})

	list, err := NewWalker(pool).Relations(context.Background(), "public")
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders", "accounts"}, names(list))
	assert.Equal(t, []any{"public"}, pool.Calls()[0].Args)
}

func TestBuild_OrderIndependentOfCompletion(t *testing.T) {
	aDone := make(chan struct{})
	bStarted := make(chan struct{})
	pool := pooltest.New().
		Returns(DatabaseNameSQL, []any{"app"}).
		Returns(SchemaNamesSQL, []any{"b,a"}).
		On(RelationsSQL, func(ctx context.Context, args []any) ([][]any, error) {
			switch args[0] {
			case "b":
				close(bStarted)
				// b 一定晚于 a 完成
				select {
				case <-aDone:
				case <-time.After(5 * time.Second):
					return nil, errors.New("a never finished")
				}
				return [][]any{{"b1"}, {"b2"}}, nil
			case "a":
				defer close(aDone)
				return [][]any{{"a1"}, {"a2"}}, nil
			}
			return nil, nil
		})

	db, err := NewWalker(pool).Build(context.Background())
	require.NoError(t, err)

	<-bStarted
	assert.Equal(t, "app", db.Name)
	require.Len(t, db.Schemas, 2)
	assert.Equal(t, "b", db.Schemas[0].Name)
	assert.Equal(t, "a", db.Schemas[1].Name)
	assert.Equal(t, []string{"b1", "b2", "a1", "a2"}, names(db.Relations()))
	assert.Zero(t, pool.Outstanding(), "所有连接都应归还")
}

func TestBuild_DefaultSchema(t *testing.T) {
	pool := pooltest.New().
		Returns(DatabaseNameSQL, []any{"shop"}).
		Returns(SchemaNamesSQL).
		Returns(RelationsSQL, []any{"orders"}, []any{"users"})

	in, err := New(context.Background(), NewWalker(pool))
	require.NoError(t, err)
	assert.Equal(t, "shop", in.Database.Name)
	require.Len(t, in.Database.Schemas, 1)
	assert.Equal(t, "public", in.Database.Schemas[0].Name)
	assert.Equal(t, []string{"orders", "users"}, names(in.Relations()))
}

func TestBuild_AcquireFailureIsFatal(t *testing.T) {
	pool := pooltest.New()
	pool.AcquireFunc = func(context.Context) error { return errors.New("connection refused") }

	db, err := NewWalker(pool).Build(context.Background())
	assert.Nil(t, db)
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageConnect, fe.Stage)
	assert.ErrorContains(t, err, "connection refused")
}

func TestBuild_DatabaseNameFailureIsFatal(t *testing.T) {
	pool := pooltest.New().Fails(DatabaseNameSQL, errors.New("permission denied"))

	_, err := NewWalker(pool).Build(context.Background())
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageDatabase, fe.Stage)
}

func TestBuild_SchemaQueryFailureProducesNoPartialSchema(t *testing.T) {
	boom := errors.New("relation query failed")
	pool := pooltest.New().
		Returns(DatabaseNameSQL, []any{"app"}).
		Returns(SchemaNamesSQL, []any{"a,b"}).
		On(RelationsSQL, func(ctx context.Context, args []any) ([][]any, error) {
			if args[0] == "b" {
				return nil, boom
			}
			return [][]any{{"a1"}}, nil
		})

	db, err := NewWalker(pool).Build(context.Background())
	assert.Nil(t, db, "失败时不应返回部分结果")

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageRelation, fe.Stage)
	assert.Equal(t, "b", fe.Target)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, pool.Outstanding())
}

func TestDatabaseRelations(t *testing.T) {
	db := &Database{Name: "app", Schemas: []Schema{
		{Name: "public", Relations: []Relation{{Name: "users"}, {Name: "orders"}}},
		{Name: "empty"},
		{Name: "audit", Relations: []Relation{{Name: "users"}}},
	}}
	assert.Equal(t, []string{"users", "orders", "users"}, names(db.Relations()), "重名关系应保留")
	assert.Empty(t, (&Database{}).Relations())
}

func TestFatalErrorMessage(t *testing.T) {
	err := &FatalError{Stage: StageRelation, Target: "audit", Err: errors.New("timeout")}
	assert.Equal(t, "introspection relations(audit) failed: timeout", err.Error())
	assert.False(t, IsFatal(errors.New("other")))
}
