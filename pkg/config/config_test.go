package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
base_url: https://www.googleapis.com/drive/v3
upload_base_url: https://www.googleapis.com/upload/drive/v3
token: abc123
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.googleapis.com/drive/v3", cfg.BaseURL)
	assert.Equal(t, "abc123", cfg.Token)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("GLOOMTOOLS_TOKEN", "secret")
	path := writeConfig(t, `
base_url: https://www.googleapis.com/drive/v3
token: ${GLOOMTOOLS_TOKEN}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `token: abc123`)
	_, err := Load(path)
	assert.Error(t, err, "missing base_url must fail validation")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
