package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("CLIENT_URL", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "roys-elegance", cfg.DBName)
	assert.Equal(t, "http://localhost:3000", cfg.ClientURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "storefront", cfg.DBName)
	assert.False(t, cfg.IsDevelopment())
}
