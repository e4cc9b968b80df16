package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagSet mirrors the persistent flags registered by the root command.
func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "datasets root")
	flags.String("catalog", "", "catalog file")
	flags.StringP("output", "o", "", "output mode")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.String("log-level", "", "log level")
	flags.Bool("strict", false, "strict")
	flags.Bool("no-kaggle", false, "disable kaggle")
	flags.String("kaggle-config-dir", "", "kaggle config dir")
	flags.String("kaggle-base-url", "", "kaggle base url")
	flags.Duration("http-timeout", 0, "http timeout")
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dsfetch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultRoot, cfg.Root)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.HTTPTimeout)
	assert.True(t, cfg.Kaggle.Enabled)
	assert.Equal(t, DefaultBaseURL, cfg.Kaggle.BaseURL)
	assert.False(t, cfg.Strict)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Fixtures(t *testing.T) {
	testdataDir := "../testdata"

	t.Run("full config", func(t *testing.T) {
		ResetConfig()
		cfgPath := filepath.Join(testdataDir, "valid_full.yaml")
		cfg, err := LoadConfig(cfgPath, nil)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(testdataDir, "data"), cfg.Root)
		assert.Equal(t, filepath.Join(testdataDir, "extra.yaml"), cfg.CatalogFile)
		assert.Equal(t, "plain", cfg.Output)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.True(t, cfg.Strict)
		assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
		assert.False(t, cfg.Kaggle.Enabled)
		assert.Equal(t, filepath.Join(testdataDir, "creds"), cfg.Kaggle.ConfigDir)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.Kaggle.BaseURL)
		assert.Equal(t, cfgPath, GetConfigFileUsed())
	})

	t.Run("invalid output mode", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(testdataDir, "invalid_output.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "markdown")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(testdataDir, "invalid_timeout.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http_timeout must be positive")
	})

	t.Run("invalid log level", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(testdataDir, "invalid_log_level.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to decode config")
	})

	t.Run("missing file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(testdataDir, "does_not_exist.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "root: from_file\n")
	t.Setenv("DSFETCH_ROOT", "from_env")

	flags := newFlagSet()
	require.NoError(t, flags.Set("root", "from_flag"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Root, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "strict: false\nkaggle:\n  base_url: http://from-file\n")
	t.Setenv("DSFETCH_STRICT", "true")
	t.Setenv("DSFETCH_KAGGLE_BASE_URL", "http://from-env")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Strict, "env var should override config file")
	assert.Equal(t, "http://from-env", cfg.Kaggle.BaseURL)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	t.Setenv("DSFETCH_HTTP_TIMEOUT", "5m")

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.HTTPTimeout, "env var should be used when flag is not set")
}

func TestLoadConfig_FlagMapping(t *testing.T) {
	ResetConfig()

	flags := newFlagSet()
	require.NoError(t, flags.Set("no-kaggle", "true"))
	require.NoError(t, flags.Set("kaggle-config-dir", "/etc/kaggle"))
	require.NoError(t, flags.Set("catalog", "more.yaml"))
	require.NoError(t, flags.Set("http-timeout", "30s"))
	require.NoError(t, flags.Set("log-level", "error"))
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.False(t, cfg.Kaggle.Enabled)
	assert.Equal(t, "/etc/kaggle", cfg.Kaggle.ConfigDir)
	assert.Equal(t, "more.yaml", cfg.CatalogFile)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_FlagPathsStayRelativeToWorkingDir(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, "root: from_file\ncatalog_file: extra.yaml\n")

	flags := newFlagSet()
	require.NoError(t, flags.Set("root", "local"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Root)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "extra.yaml"), cfg.CatalogFile)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DSFETCH_ROOT":              "root",
		"DSFETCH_HTTP_TIMEOUT":      "http_timeout",
		"DSFETCH_KAGGLE_ENABLED":    "kaggle.enabled",
		"DSFETCH_KAGGLE_CONFIG_DIR": "kaggle.config_dir",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty root", mutate: func(c *Config) { c.Root = "" }, errSubstr: "root is required"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "html" }, errSubstr: "unknown output mode"},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, errSubstr: "http_timeout must be positive"},
		{name: "missing base url", mutate: func(c *Config) { c.Kaggle.BaseURL = "" }, errSubstr: "kaggle.base_url is required"},
		{
			name:   "missing base url with kaggle disabled",
			mutate: func(c *Config) { c.Kaggle.BaseURL = ""; c.Kaggle.Enabled = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateCatalogFile(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ValidateCatalogFile())

	cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	err := cfg.ValidateCatalogFile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file does not exist")

	cfg.CatalogFile = "../testdata/extra_catalog.yaml"
	assert.NoError(t, cfg.ValidateCatalogFile())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()

	logger := NewLogger(&buf, cfg, "abc")
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "run_id=abc")

	buf.Reset()
	cfg.Verbose = true
	NewLogger(&buf, cfg, "").Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
	assert.NotContains(t, buf.String(), "run_id")
}

func TestGetLogger(t *testing.T) {
	fallback := GetLogger(context.Background())
	require.NotNil(t, fallback)

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	assert.Equal(t, DefaultRoot, GetConfig(context.Background()).Root, "defaults without a loaded config")

	flags := newFlagSet()
	require.NoError(t, flags.Set("root", "loaded"))
	loaded, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Same(t, loaded, GetConfig(context.Background()), "falls back to the last loaded config")

	fromCtx := Default()
	fromCtx.Root = "from-context"
	ctx := WithConfig(context.Background(), fromCtx)
	assert.Same(t, fromCtx, GetConfig(ctx))
}
