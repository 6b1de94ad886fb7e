package ioc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texthtml/pgql/log"
	"github.com/texthtml/pgql/std"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestContainerGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Get(), Supply("")))
}

func TestSetupLogger(t *testing.T) {
	assert.NoError(t, setupLogger(&std.Config{Log: std.LogConfig{Level: "debug"}}))
	assert.Error(t, setupLogger(&std.Config{Log: std.LogConfig{Level: "verbose"}}))
}

func TestSetupLoggerRotateFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	file := filepath.Join(t.TempDir(), "pgql.log")
	c := &std.Config{Log: std.LogConfig{Level: "info", File: file, MaxSize: 1, MaxAge: 1, MaxBackups: 1, Compress: true}}
	require.NoError(t, setupLogger(c))

	log.Info().Str("case", "rotate").Msg("写入轮转文件")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"case":"rotate"`)
}

func TestAdapterAppendsHooks(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	var started, stopped bool
	newAdapter(lc).Append(func(context.Context) error {
		started = true
		return nil
	}, func(context.Context) error {
		stopped = true
		return nil
	})

	lc.RequireStart()
	assert.True(t, started)
	lc.RequireStop()
	assert.True(t, stopped)
}
