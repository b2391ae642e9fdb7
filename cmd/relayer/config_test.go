package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erc7824/nitrolite/relayer/pkg/log"
)

const (
	testPK     = "dcf2cbdd171a21c480aa7f53d77f31bb102282b3ff099c78e3118b37348c72f7"
	testRPCURL = "https://rpc.example.com/v3/key"
)

// clearEnv unsets keys for the duration of the test, including values that
// godotenv sets while the test runs.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		prev, ok := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func setupConfigDir(t *testing.T, dotEnv string) {
	t.Helper()
	clearEnv(t, "PK", "RPC_URL", "METRICS_ADDR", "RELAYER_LOG_FORMAT", "RELAYER_LOG_LEVEL", "RELAYER_LOG_OUTPUT")

	dir := t.TempDir()
	if dotEnv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotEnv), 0600))
	}
	t.Setenv(configDirPathEnv, dir)
}

func TestLoadConfig(t *testing.T) {
	t.Run("From .env file", func(t *testing.T) {
		setupConfigDir(t, "PK="+testPK+"\nRPC_URL="+testRPCURL+"\nRELAYER_LOG_FORMAT=json\n")

		conf, err := LoadConfig(log.NewNoopLogger())
		require.NoError(t, err)
		assert.Equal(t, testPK, conf.PrivateKey)
		assert.Equal(t, testRPCURL, conf.RPCURL)
		assert.Equal(t, "json", conf.Log.Format)
		assert.Equal(t, log.LevelInfo, conf.Log.Level)
		assert.Empty(t, conf.MetricsAddr)
	})

	t.Run("Environment without .env file", func(t *testing.T) {
		setupConfigDir(t, "")
		t.Setenv("PK", testPK)
		t.Setenv("RPC_URL", testRPCURL)
		t.Setenv("METRICS_ADDR", ":9090")

		conf, err := LoadConfig(log.NewNoopLogger())
		require.NoError(t, err)
		assert.Equal(t, ":9090", conf.MetricsAddr)
	})

	t.Run("Environment wins over .env", func(t *testing.T) {
		setupConfigDir(t, "PK=ignored\nRPC_URL="+testRPCURL+"\n")
		t.Setenv("PK", testPK)

		conf, err := LoadConfig(log.NewNoopLogger())
		require.NoError(t, err)
		assert.Equal(t, testPK, conf.PrivateKey)
	})

	t.Run("Missing private key", func(t *testing.T) {
		setupConfigDir(t, "RPC_URL="+testRPCURL+"\n")

		_, err := LoadConfig(log.NewNoopLogger())
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.ErrorContains(t, err, "PK")
	})

	t.Run("Missing everything", func(t *testing.T) {
		setupConfigDir(t, "")

		_, err := LoadConfig(log.NewNoopLogger())
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.ErrorContains(t, err, "PK, RPC_URL")
	})

	t.Run("Invalid settings", func(t *testing.T) {
		for name, dotEnv := range map[string]string{
			"Log format":   "RELAYER_LOG_FORMAT=xml\n",
			"Log level":    "RELAYER_LOG_LEVEL=verbose\n",
			"Metrics addr": "METRICS_ADDR=not-an-addr\n",
		} {
			t.Run(name, func(t *testing.T) {
				setupConfigDir(t, "PK="+testPK+"\nRPC_URL="+testRPCURL+"\n"+dotEnv)

				_, err := LoadConfig(log.NewNoopLogger())
				assert.ErrorContains(t, err, "invalid configuration")
			})
		}
	})
}

func TestConfigString(t *testing.T) {
	conf := Config{PrivateKey: testPK, RPCURL: testRPCURL}
	assert.NotContains(t, conf.String(), testPK)
	assert.Contains(t, conf.String(), "<redacted>")
	assert.Contains(t, Config{}.String(), "<unset>")
}
