package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNew_defaults(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "localhost:8123", c.Addr())
	assert.Equal(t, "/signup", c.Guard.SignupPath)
}

func TestLoad_missingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_overrides(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := writeConfig(t, `
server:
  port: 9000
api:
  base_url: http://backend:8000/
  credential_cookies: [token, refresh]
guard:
  check_timeout: 250ms
log:
  production: true
`)

	c, err := Load(path)
	require.NoError(err)

	assert.Equal(9000, c.Server.Port)
	assert.Equal("localhost", c.Server.Host)
	assert.Equal("http://backend:8000", c.API.BaseURL)
	assert.Equal([]string{"token", "refresh"}, c.API.CredentialCookies)
	assert.Equal(250*time.Millisecond, c.Guard.CheckTimeout)
	assert.Equal("/signup", c.Guard.SignupPath)
	assert.True(c.Log.Production)
}

func TestLoad_invalid(t *testing.T) {
	for name, body := range map[string]string{
		"bad yaml":         "server: [",
		"relative signup":  "guard:\n  signup_path: signup\n",
		"empty base url":   "api:\n  base_url: \"\"\n",
		"negative timeout": "guard:\n  check_timeout: -1s\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_dir(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, errConfigIsDir)
}
