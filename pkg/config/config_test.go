package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "stasha-pos", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "sandbox", cfg.MPesa.Env)
	assert.Equal(t, "https://sandbox.safaricom.co.ke", cfg.MPesa.BaseURL())
	assert.Equal(t, "pos.tickets", cfg.AMQP.Exchange)
	assert.False(t, cfg.MPesa.Enabled())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "https://pos.example.com/")
	t.Setenv("MPESA_ENV", "production")
	t.Setenv("MPESA_CONSUMER_KEY", "key")
	t.Setenv("MPESA_CONSUMER_SECRET", "secret")
	t.Setenv("MPESA_SHORTCODE", "174379")
	t.Setenv("MPESA_PASSKEY", "pass")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://pos.example.com", cfg.HTTP.PublicBaseURL, "se recorta la barra final")
	assert.Equal(t, "https://api.safaricom.co.ke", cfg.MPesa.BaseURL())
	assert.True(t, cfg.MPesa.Enabled())
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_ProduccionSinSecretFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "stasha", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/stasha?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
