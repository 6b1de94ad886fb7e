package introspect

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texthtml/pgql/std/pooltest"
)

func TestBuild_SQLPoolDefaultSchema(t *testing.T) {
	pool, mock := pooltest.NewSQLMock(t)
	mock.ExpectQuery(DatabaseNameSQL).WillReturnRows(
		sqlmock.NewRows([]string{"current_database"}).AddRow("app"),
	)
	mock.ExpectQuery(SchemaNamesSQL).WithArgs("app").WillReturnRows(
		sqlmock.NewRows([]string{"description"}),
	)
	mock.ExpectQuery(RelationsSQL).WithArgs("public").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("orders").AddRow("users"),
	)

	in, err := New(context.Background(), NewWalker(pool))
	require.NoError(t, err)
	assert.Equal(t, "app", in.Database.Name)
	assert.Equal(t, []string{"orders", "users"}, names(in.Relations()))
	assert.Equal(t, "public", in.Relations()[0].Schema)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuild_SQLPoolCommentSchemas(t *testing.T) {
	pool, mock := pooltest.NewSQLMock(t)
	// 各schema并发查询，到达顺序不固定
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(DatabaseNameSQL).WillReturnRows(
		sqlmock.NewRows([]string{"current_database"}).AddRow("app"),
	)
	mock.ExpectQuery(SchemaNamesSQL).WithArgs("app").WillReturnRows(
		sqlmock.NewRows([]string{"description"}).AddRow("b,a"),
	)
	mock.ExpectQuery(RelationsSQL).WithArgs("a").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("a1"),
	)
	mock.ExpectQuery(RelationsSQL).WithArgs("b").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow("b1").AddRow("b2"),
	)

	in, err := New(context.Background(), NewWalker(pool))
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "a1"}, names(in.Relations()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuild_SQLPoolRelationFailureIsFatal(t *testing.T) {
	pool, mock := pooltest.NewSQLMock(t)
	mock.ExpectQuery(DatabaseNameSQL).WillReturnRows(
		sqlmock.NewRows([]string{"current_database"}).AddRow("app"),
	)
	mock.ExpectQuery(SchemaNamesSQL).WithArgs("app").WillReturnRows(
		sqlmock.NewRows([]string{"description"}),
	)
	mock.ExpectQuery(RelationsSQL).WithArgs("public").WillReturnError(errors.New("permission denied"))

	in, err := New(context.Background(), NewWalker(pool))
	assert.Nil(t, in)
	require.True(t, IsFatal(err))
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageRelation, fe.Stage)
	assert.Equal(t, "public", fe.Target)
}
