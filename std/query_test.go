package std_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texthtml/pgql/std"
	"github.com/texthtml/pgql/std/pooltest"
)

const nameSQL = "select name from t where id = $1"

func TestScanOne(t *testing.T) {
	pool := pooltest.New().Returns(nameSQL, []any{"alice"}, []any{"bob"})

	var name string
	err := std.WithConn(context.Background(), pool, func(c std.Conn) error {
		found, err := std.ScanOne(context.Background(), c, nameSQL, []any{1}, &name)
		assert.True(t, found)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", name, "只取第一行")
	assert.Equal(t, []pooltest.Call{{Query: nameSQL, Args: []any{1}}}, pool.Calls())
	assert.Zero(t, pool.Outstanding())
}

func TestScanOneNoRows(t *testing.T) {
	pool := pooltest.New().Returns(nameSQL)

	err := std.WithConn(context.Background(), pool, func(c std.Conn) error {
		var name string
		found, err := std.ScanOne(context.Background(), c, nameSQL, []any{1}, &name)
		assert.False(t, found)
		assert.NoError(t, err)
		return std.MustScanOne(context.Background(), c, nameSQL, []any{1}, &name)
	})
	assert.ErrorIs(t, err, std.ErrNoRows)
	assert.Zero(t, pool.Outstanding())
}

func TestWithConnReleasesOnError(t *testing.T) {
	boom := errors.New("boom")
	pool := pooltest.New().Fails(nameSQL, boom)

	err := std.WithConn(context.Background(), pool, func(c std.Conn) error {
		var name string
		return std.MustScanOne(context.Background(), c, nameSQL, nil, &name)
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, pool.Outstanding())
}

func TestWithConnAcquireFailure(t *testing.T) {
	pool := pooltest.New()
	pool.AcquireFunc = func(context.Context) error { return errors.New("exhausted") }

	called := false
	err := std.WithConn(context.Background(), pool, func(std.Conn) error {
		called = true
		return nil
	})
	assert.EqualError(t, err, "exhausted")
	assert.False(t, called)
}

func TestWithConnCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := std.WithConn(ctx, pooltest.New(), func(std.Conn) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
