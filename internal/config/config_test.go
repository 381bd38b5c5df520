package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Page)
	assert.Equal(t, 0, cfg.PageSize)
	assert.Equal(t, "empty table", cfg.EmptyText)
	assert.Equal(t, "html", cfg.Format)
	assert.Equal(t, "rounded", cfg.Border)
	assert.Equal(t, "info", cfg.LogLevel())
}

func TestLoadFlags(t *testing.T) {
	t.Parallel()
	cfg, err := Load(newFlags(t,
		"--page-size", "5",
		"--except", "password,token",
		"--sortable", "id",
		"--sort", "-id",
		"--debug",
	))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, []string{"password", "token"}, cfg.Except)
	assert.Equal(t, []string{"id"}, cfg.Sortable)
	assert.Equal(t, "-id", cfg.Sort)
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tabler.yaml")
	content := "page-size: 25\nclass: table striped\nfooter: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(newFlags(t, "--config", path, "--class", "table"))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.Footer)
	assert.Equal(t, "table", cfg.Class, "flag wins over file")
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TABLER_PAGE_SIZE", "7")
	t.Setenv("TABLER_URL_PATH", "/users")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, "/users", cfg.URLPath)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Parallel()
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cfg     Config
		wantErr string
	}{
		"ok":            {cfg: Config{Format: "html"}},
		"negative page": {cfg: Config{Format: "html", PageSize: -1}, wantErr: "page-size"},
		"driver only":   {cfg: Config{Format: "html", Driver: "sqlite"}, wantErr: "--dsn"},
		"no query":      {cfg: Config{Format: "html", Driver: "sqlite", DSN: ":memory:"}, wantErr: "--query"},
		"bad format":    {cfg: Config{Format: "pdf"}, wantErr: "unsupported format"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
