package config_test

import (
	"testing"

	"github.com/elan026/student-360/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults 无配置文件时使用默认值
func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "student360", cfg.Database.DBName)
	assert.Equal(t, 5, cfg.Notify.Workers)
	assert.Equal(t, 1000, cfg.Notify.QueueSize)
	assert.False(t, cfg.Tracing.Enabled)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

// TestEnvOverride 环境变量覆盖默认值
func TestEnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "error")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Log.Level)
}

// TestIsProduction 环境判断
func TestIsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	t.Setenv("APP_ENV", "development")
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
}

// TestProductionLogDefaults 生产环境日志默认更安静且为 JSON 格式
func TestProductionLogDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}
