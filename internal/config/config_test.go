package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "goboard", cfg.MongoDB)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MONGO_DB", "boardtest")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "boardtest", cfg.MongoDB)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
}
