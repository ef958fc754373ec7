package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
jwt:
  secret_key: test-secret
database:
  path: `+filepath.Join(dir, "db", "app.db")+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.GetAddress())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 6, cfg.Pagination.PageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 480, cfg.Media.MinWidth)
	assert.Equal(t, 169, cfg.Media.MinHeight)
	assert.Equal(t, "local", cfg.Media.Backend)
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestLoadReadsSecretFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
database:
  path: `+filepath.Join(dir, "app.db")+`
`)
	t.Setenv("FOODGRAM_JWT_SECRET_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"missing secret": `
server:
  port: 8000
`,
		"postgres without dsn": `
jwt:
  secret_key: x
database:
  driver: postgres
`,
		"unknown media backend": `
jwt:
  secret_key: x
database:
  driver: postgres
  dsn: host=localhost
media:
  backend: ftp
`,
		"page size over max": `
jwt:
  secret_key: x
database:
  driver: postgres
  dsn: host=localhost
pagination:
  page_size: 200
  max_page_size: 100
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
