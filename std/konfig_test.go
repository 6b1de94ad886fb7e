package std

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 使用独立前缀，避免宿主环境变量干扰
const testPrefix = "PGQLTEST"

func TestNewKonfigDefaults(t *testing.T) {
	k, err := NewKonfig(WithEnvPrefix(testPrefix), WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, "dev", k.String("mode"))
	assert.Equal(t, "127.0.0.1", k.String("host"))
	assert.Equal(t, "8080", k.String("port"))
	assert.Equal(t, "info", k.String("log.level"))
	assert.Equal(t, "/graphql", k.String("graphql.endpoint"))
	assert.Equal(t, 16, k.Int("db.max-open"))
}

func TestNewKonfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: 0.0.0.0
port: 9000
db:
  url: postgres://file/app
`), 0644))
	t.Setenv(testPrefix+"_DB_URL", "postgres://env/app")

	k, err := NewKonfig(WithFilePath(path), WithEnvPrefix(testPrefix), WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", k.String("host"), "配置文件覆盖默认值")
	assert.Equal(t, "9000", k.String("port"))
	assert.Equal(t, "postgres://env/app", k.String("db.url"), "环境变量优先级最高")
}

func TestNewKonfigEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(testPrefix+"_PORT=9090\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv(testPrefix + "_PORT") })

	k, err := NewKonfig(WithEnvPrefix(testPrefix), WithEnvFile(path))
	require.NoError(t, err)
	assert.Equal(t, "9090", k.String("port"))
}

func TestNewKonfigMissingEnvFileIgnored(t *testing.T) {
	_, err := NewKonfig(WithEnvPrefix(testPrefix), WithEnvFile(filepath.Join(t.TempDir(), "none.env")))
	assert.NoError(t, err)
}

func TestNewKonfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewKonfig(WithFilePath(filepath.Join(dir, "pgql.toml")), WithEnvFile(""))
	assert.ErrorContains(t, err, "不支持的配置文件类型")

	_, err = NewKonfig(WithFilePath(filepath.Join(dir, "missing.yaml")), WithEnvFile(""))
	assert.ErrorContains(t, err, "加载配置文件失败")
}
