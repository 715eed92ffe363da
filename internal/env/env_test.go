package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	assert := require.New(t)
	t.Setenv("WP_BASE_URL", "https://cms.example.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(err)
	assert.Equal(4002, cfg.Port)
	assert.Equal("https://cms.example.test", cfg.WordPressURL)
	assert.Equal("wordpress", cfg.PropertySource)
	assert.Equal(15*time.Minute, cfg.FeedCacheTTL)
	assert.Equal(21, cfg.FeedFTP.Port)
	assert.Equal(10*time.Second, cfg.FeedFTP.Timeout)
	assert.Equal([]string{"*"}, cfg.CORSOrigins)
	assert.Equal(100, cfg.RateLimit)
}

func TestLoadRequired(t *testing.T) {
	t.Setenv("WP_BASE_URL", "")
	os.Unsetenv("WP_BASE_URL") //nolint:errcheck
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "WP_BASE_URL")
}

func TestLoadFileAndOverrides(t *testing.T) {
	assert := require.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	assert.NoError(os.WriteFile(file, []byte("WP_BASE_URL=https://from-file.test\nPORT=8080\nFEED_FTP_HOST=ftp.vendor.test\n"), 0o600))
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("FEED_CACHE_TTL", "90s")
	t.Cleanup(func() {
		os.Unsetenv("WP_BASE_URL")   //nolint:errcheck
		os.Unsetenv("FEED_FTP_HOST") //nolint:errcheck
	})

	cfg, err := Load(file)
	assert.NoError(err)
	assert.Equal("https://from-file.test", cfg.WordPressURL)
	assert.Equal(9090, cfg.Port)
	assert.Equal("ftp.vendor.test", cfg.FeedFTP.Host)
	assert.Equal([]string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(90*time.Second, cfg.FeedCacheTTL)
}

func TestLoadIngester(t *testing.T) {
	assert := require.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "ingest.env")
	assert.NoError(os.WriteFile(file, []byte("PG_DSN=postgres://cotesud@db/cotesud\nINGEST_RUN_ONCE=true\n"), 0o600))
	t.Setenv("INGEST_INTERVAL", "6h")
	t.Cleanup(func() {
		os.Unsetenv("PG_DSN")          //nolint:errcheck
		os.Unsetenv("INGEST_RUN_ONCE") //nolint:errcheck
	})

	cfg, err := LoadIngester(file)
	assert.NoError(err)
	assert.Equal("postgres://cotesud@db/cotesud", cfg.PostgresDSN)
	assert.Equal(6*time.Hour, cfg.Interval)
	assert.Equal(time.Minute, cfg.Timeout)
	assert.True(cfg.RunOnce)
	assert.Equal("info", cfg.LogLevel)
}

func TestLoadIngesterRequired(t *testing.T) {
	t.Setenv("PG_DSN", "")
	os.Unsetenv("PG_DSN") //nolint:errcheck
	t.Setenv("WP_BASE_URL", "")
	os.Unsetenv("WP_BASE_URL") //nolint:errcheck

	_, err := LoadIngester(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "PG_DSN")
	require.NotContains(t, err.Error(), "WP_BASE_URL")
}
