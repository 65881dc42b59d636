package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pkindex/internal/config"
)

// isolateHome points PKINDEX_HOME at a temp dir and clears overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, k := range []string{
		config.EnvSource, config.EnvAddr, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvHistoryRows, config.EnvProjectDir,
	} {
		t.Setenv(k, "")
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestDefault(t *testing.T) {
	home := isolateHome(t)

	cfg := config.Default()
	assert.Equal(t, "data/index_history.csv", cfg.Source.URL)
	assert.Zero(t, cfg.Source.Timeout)
	assert.Equal(t, 10, cfg.Display.HistoryRows)
	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, "PK500-A (USD)", cfg.Display.SeriesName)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Server.Compression)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolateHome(t)

	cfg := config.Default()
	cfg.Source.URL = "https://example.com/index_history.csv"
	cfg.Source.Timeout = 5 * time.Second
	cfg.Display.HistoryRows = 25
	cfg.Server.Compression = false
	require.NoError(t, cfg.Save())

	loaded := config.New()
	assert.Equal(t, "https://example.com/index_history.csv", loaded.Source.URL)
	assert.Equal(t, 5*time.Second, loaded.Source.Timeout)
	assert.Equal(t, 25, loaded.Display.HistoryRows)
	assert.False(t, loaded.Server.Compression)
}

func TestLoadMissingFile(t *testing.T) {
	isolateHome(t)

	cfg := config.Default()
	cfg.SetConfigPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, cfg.Load())
	assert.Equal(t, config.DefaultSource, cfg.Source.URL)
}

func TestLoadInvalidYAML(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unterminated"), 0o600))

	cfg := config.Default()
	cfg.SetConfigPath(path)
	require.Error(t, cfg.Load())
}

func TestEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvSource, "/srv/history.csv")
	t.Setenv(config.EnvAddr, "127.0.0.1:9000")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvHistoryRows, "3")

	cfg := config.New()
	assert.Equal(t, "/srv/history.csv", cfg.Source.URL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Display.HistoryRows)
}

func TestEnvOverrideBadRowsIgnored(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvHistoryRows, "many")

	assert.Equal(t, config.DefaultHistoryRows, config.New().Display.HistoryRows)
}

func TestLoadDotEnv(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PKINDEX_SOURCE=from-dotenv.csv\n"), 0o600))

	// t.Setenv registers restoration; unset so godotenv may fill it.
	require.NoError(t, os.Unsetenv(config.EnvSource))

	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "from-dotenv.csv", config.New().Source.URL)
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvAddr, ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PKINDEX_ADDR=:9999\n"), 0o600))

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, ":7000", os.Getenv(config.EnvAddr))
}

func TestValidate(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "empty source", mutate: func(c *config.Config) { c.Source.URL = " " }, wantErr: "source.url"},
		{name: "negative timeout", mutate: func(c *config.Config) { c.Source.Timeout = -time.Second }, wantErr: "source.timeout"},
		{name: "zero rows", mutate: func(c *config.Config) { c.Display.HistoryRows = 0 }, wantErr: "history_rows"},
		{name: "too many rows", mutate: func(c *config.Config) { c.Display.HistoryRows = 1001 }, wantErr: "history_rows"},
		{name: "max rows", mutate: func(c *config.Config) { c.Display.HistoryRows = 1000 }},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: "default_format"},
		{name: "bad addr", mutate: func(c *config.Config) { c.Server.Addr = "8080" }, wantErr: "server.addr"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSet(t *testing.T) {
	isolateHome(t)
	cfg := config.Default()

	require.NoError(t, cfg.Set("display.history_rows", "20"))
	v, err := cfg.Get("display.history_rows")
	require.NoError(t, err)
	assert.Equal(t, "20", v)

	require.NoError(t, cfg.Set("source.timeout", "1m30s"))
	assert.Equal(t, 90*time.Second, cfg.Source.Timeout)

	require.NoError(t, cfg.Set("server.compression", "false"))
	assert.False(t, cfg.Server.Compression)

	require.Error(t, cfg.Set("display.history_rows", "lots"))

	_, err = cfg.Get("nope.key")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope.key", "x"), config.ErrUnknownKey)
}

func TestListAndKeys(t *testing.T) {
	isolateHome(t)

	keys := config.Keys()
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "source.url")

	list := config.Default().List()
	assert.Len(t, list, len(keys))
	assert.Equal(t, ":8080", list["server.addr"])
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, config.GetGlobalConfig())
	assert.Equal(t, "table", config.GetDefaultOutputFormat())
	assert.Equal(t, "info", config.GetLoggingConfig().Level)

	replacement := config.Default()
	replacement.Logging.File = "/tmp/pkindex-test.log"
	config.SetGlobalConfig(replacement)
	assert.Same(t, replacement, config.GetGlobalConfig())
	assert.Equal(t, "/tmp/pkindex-test.log", config.GetLoggingConfig().File)

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, replacement, config.GetGlobalConfig())
}

func TestEnsureLogDir(t *testing.T) {
	isolateHome(t)

	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "sub", "pkindex.log")
	config.SetGlobalConfig(cfg)

	require.NoError(t, config.EnsureLogDir())
	stat, err := os.Stat(filepath.Dir(cfg.Logging.File))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(isolateHome(t), "nested")
	t.Setenv(config.EnvHome, home)

	dir, err := config.EnsureConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)
	stat, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", out.Output)
	assert.Equal(t, "warn", out.Level)

	lc.File = "/var/log/pkindex.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/var/log/pkindex.log", out.File)
}
