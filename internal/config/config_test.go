package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "ORDER_TIMEOUT_SECONDS", "SHIPPING_FEE_CENTS", "TAX_RATE", "CORS_ALLOWED_ORIGINS", "CART_TTL_HOURS", "WISHLIST_TTL_HOURS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.OrderTimeout)
	assert.Equal(t, int64(1000), cfg.ShippingFeeCents)
	assert.Equal(t, "0.10", cfg.TaxRate)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
	assert.Equal(t, 720*time.Hour, cfg.WishlistTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ORDER_TIMEOUT_SECONDS", "3")
	t.Setenv("SHIPPING_FEE_CENTS", "500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, ,https://admin.example.com")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.OrderTimeout)
	assert.Equal(t, int64(500), cfg.ShippingFeeCents)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOREFRONT_TEST_ONLY_ADDR=:7070\n"), 0o600))
	t.Setenv("HTTP_ADDR", "")
	t.Cleanup(func() { os.Unsetenv("STOREFRONT_TEST_ONLY_ADDR") })

	_, found := Load(path)

	assert.True(t, found)
	assert.Equal(t, ":7070", os.Getenv("STOREFRONT_TEST_ONLY_ADDR"))
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":6060")

	cfg, found := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.False(t, found)
	assert.Equal(t, ":6060", cfg.HTTPAddr)
}
