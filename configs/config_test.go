package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: storefront-api
  http_addr: ":8080"
  log_level: info
  log_file: ./logs/app.log
http:
  request_timeout: 5s
mysql:
  dsn: "store:store@tcp(localhost:3306)/storefront?parseTime=true"
pricing:
  delivery_fee: 50
security:
  jwt_secret: base-secret
  issuer: kakanin-idp
  audience: storefront-api
`

func writeConfigs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadBase(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	cfg, err := Load(dir, "dev")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.True(t, cfg.DeliveryFee().Equal(decimal.NewFromInt(50)))
}

func TestLoadEnvFileOverlay(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base.yaml": baseYAML,
		"prod.yaml": "app:\n  http_addr: \":9090\"\n",
	})

	cfg, err := Load(dir, "prod")

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, "base-secret", cfg.Security.JWTSecret, "untouched keys come from base")
}

func TestLoadEnvVarOverride(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})
	t.Setenv("STOREAPI_SECURITY__JWT_SECRET", "env-secret")

	cfg, err := Load(dir, "dev")

	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Security.JWTSecret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing http addr", func(c *Config) { c.App.HTTPAddr = "" }},
		{"missing dsn", func(c *Config) { c.MySQL.DSN = "" }},
		{"missing jwt secret", func(c *Config) { c.Security.JWTSecret = "" }},
		{"negative fee", func(c *Config) { c.Pricing.DeliveryFee = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})
			cfg, err := Load(dir, "dev")
			require.NoError(t, err)

			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
