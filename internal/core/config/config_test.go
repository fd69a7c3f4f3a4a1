package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  http:
    port: 8081
log:
  level: debug
jwt:
  secret: from-file
db:
  driver: postgres
  dsn: host=localhost user=app dbname=personnel
redis:
  addr: 127.0.0.1:6379
limits:
  periprps: 5
admin:
  email: root@api.pl
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, c.App.HTTP.Port)
	assert.Equal(t, "0.0.0.0", c.App.HTTP.Host)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "from-file", c.JWT.Secret)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	assert.Equal(t, 60, c.Redis.TTLSec)
	assert.Equal(t, int64(300), c.Limits.Concurrency)
	assert.Equal(t, 5.0, c.Limits.PerIPRPS)
	assert.Equal(t, 20, c.Limits.PerIPBurst)
	assert.Equal(t, "root@api.pl", c.Admin.Email)
	assert.Equal(t, "Admin", c.Admin.Name)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_DB_DRIVER", "mongo")
	t.Setenv("APP_ADMIN_PASSWORD", "from-env-pw")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "mongo", c.DB.Driver)
	assert.Equal(t, "from-env-pw", c.Admin.Password)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "only-env")
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", c.DB.Driver)
	assert.Equal(t, 3050, c.App.HTTP.Port)
	assert.Equal(t, 0.0, c.Limits.PerIPRPS)
	assert.Empty(t, c.Admin.Email)
}

func TestLoadRequiresSecret(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
