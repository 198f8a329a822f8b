package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Run("MissingFileFallsBackToBuiltins", func(t *testing.T) {
		defaults, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.True(t, defaults.DefaultContribution.Equal(decimal.NewFromInt(500)))
		assert.True(t, defaults.FundBaseAmount.Equal(decimal.NewFromInt(20000)))
		assert.Len(t, defaults.Items, 5)
	})

	t.Run("YAMLOverridesBuiltins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "defaults.yaml")
		content := `
defaults:
  defaultContribution: "750"
  fundBaseAmount: "1000.50"
  items:
    - name: "Crowbar"
      price: "40"
      category: "tools"
  accessKeys:
    admin: "file-admin"
    member: "file-member"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		defaults, err := LoadDefaults(path)
		require.NoError(t, err)

		assert.True(t, defaults.DefaultContribution.Equal(decimal.NewFromInt(750)))
		assert.True(t, defaults.FundBaseAmount.Equal(decimal.RequireFromString("1000.50")))
		require.Len(t, defaults.Items, 1)
		assert.Equal(t, "Crowbar", defaults.Items[0].Name)
		assert.Equal(t, "file-admin", defaults.AccessKeys.Admin)
	})

	t.Run("InvalidItemPricesAreSkipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "defaults.yaml")
		content := `
defaults:
  items:
    - name: "Good"
      price: "10"
    - name: "Bad"
      price: "not-a-number"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		defaults, err := LoadDefaults(path)
		require.NoError(t, err)
		require.Len(t, defaults.Items, 1)
		assert.Equal(t, "Good", defaults.Items[0].Name)
	})

	t.Run("EnvOverridesAccessKeys", func(t *testing.T) {
		t.Setenv("ACCESS_KEY_ADMIN", "env-admin")
		t.Setenv("ACCESS_KEY_MEMBER", "env-member")

		defaults, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "env-admin", defaults.AccessKeys.Admin)
		assert.Equal(t, "env-member", defaults.AccessKeys.Member)
	})
}

func TestGetBuiltinDefaultsCopiesItems(t *testing.T) {
	a := GetBuiltinDefaults()
	a.Items[0].Name = "mutated"

	b := GetBuiltinDefaults()
	assert.NotEqual(t, "mutated", b.Items[0].Name)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvOrDefault("CONFIG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("CONFIG_TEST_MISSING", "fallback"))
}
