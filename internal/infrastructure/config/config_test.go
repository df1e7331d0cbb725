package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, 5, cfg.Catalog.TopRatedDefaultLimit)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "s3cret")
	t.Setenv("BOOKCATALOG_STORAGE_DRIVER", "mysql")

	cfg, err := LoadFile(writeConfig(t, "database:\n  password: fromfile\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, DriverMySQL, cfg.Storage.Driver)
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"端口越界", "server:\n  port: 70000\n"},
		{"release使用默认密钥", "server:\n  mode: release\n"},
		{"未知驱动", "storage:\n  driver: sqlite\n"},
		{"默认页大小超过上限", "catalog:\n  default_page_size: 200\n  max_page_size: 100\n"},
		{"页大小上限过大", "catalog:\n  max_page_size: 500\n"},
		{"携带凭证时使用通配Origin", "cors:\n  enabled: true\n  allow_credentials: true\n  allow_origins: [\"*\"]\n"},
		{"高分榜默认数量非法", "catalog:\n  top_rated_default_limit: 0\n"},
		{"MySQL时区不是UTC", "storage:\n  driver: mysql\ndatabase:\n  loc: Asia/Shanghai\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "bookcatalog",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(db:3306)/bookcatalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai&clientFoundRows=true",
		d.DSN())
}

func TestLoadFile_MemoryDriverIgnoresLoc(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "database:\n  loc: Asia/Shanghai\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)

	cfg, err = LoadFile(writeConfig(t, "storage:\n  driver: mysql\n"))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Database.Loc)
}
