package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/pools-config/internal/pools"
	"github.com/yourorg/pools-config/internal/types"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ACTIVE_NETWORK", "PORT", "RPC_URL", "RPC_TIMEOUT", "ENABLE_METRICS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, types.NetworkMainnet, cfg.ActiveNetwork)
	assert.Equal(t, 10*time.Second, cfg.RPCTimeout)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ACTIVE_NETWORK", "Polygon")
	t.Setenv("RPC_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, types.NetworkPolygon, cfg.ActiveNetwork)
	assert.Equal(t, 3*time.Second, cfg.RPCTimeout)
	assert.Equal(t, 7, cfg.RateLimitBurst)
	assert.False(t, cfg.EnableMetrics)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidNetwork(t *testing.T) {
	t.Setenv("ACTIVE_NETWORK", "solana")

	_, err := Load()
	assert.ErrorIs(t, err, types.ErrUnknownNetwork)
}

func TestGetEnvHelpers_InvalidValuesUseDefault(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_FLOAT", "abc")
	t.Setenv("TEST_BOOL", "abc")
	t.Setenv("TEST_DURATION", "abc")

	assert.Equal(t, 5, GetEnvAsInt("TEST_INT", 5))
	assert.Equal(t, 1.5, GetEnvAsFloat("TEST_FLOAT", 1.5))
	assert.True(t, GetEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, GetEnvAsDuration("TEST_DURATION", time.Minute))
}

const poolsYAML = `
generic:
  pagination: {perPage: 20, perPool: 20, perPoolInitial: 10}
  delegateOwner: "0xba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1b"
  zeroAddress: "0x0000000000000000000000000000000000000000"
  metadata:
    "0x5c6ee304399dbdb9c8ef030ab642b10820db8f56000200000000000000000014":
      name: "B-80BAL-20WETH"
      hasIcon: true
networks:
  mainnet:
    idsMap:
      veBAL: "0x5c6ee304399dbdb9c8ef030ab642b10820db8f56000200000000000000000014"
    pagination: {perPage: 10, perPool: 10, perPoolInitial: 5}
    blockList: [""]
    factories:
      "0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9": weightedPool
  arbitrum: {}
`

func TestParsePools(t *testing.T) {
	table, err := ParsePools([]byte(poolsYAML))
	require.NoError(t, err)

	assert.Equal(t, []types.Network{types.NetworkArbitrum, types.NetworkMainnet}, table.Networks())

	mainnet := table.Get(types.NetworkMainnet)
	require.NotNil(t, mainnet.IDsMap.VeBAL)
	assert.Nil(t, mainnet.IDsMap.XMatic)
	assert.Equal(t, pools.FactoryWeighted, mainnet.Factories["0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9"])
	assert.Equal(t, []string{""}, mainnet.BlockList)

	arbitrum, ok := table.Lookup(types.NetworkArbitrum)
	assert.True(t, ok)
	assert.Equal(t, pools.Pools{}, arbitrum)

	polygon, ok := table.Lookup(types.NetworkPolygon)
	assert.False(t, ok)
	assert.Equal(t, 20, polygon.Pagination.PerPage)
	assert.Equal(t, "B-80BAL-20WETH", polygon.Metadata["0x5c6ee304399dbdb9c8ef030ab642b10820db8f56000200000000000000000014"].Name)
}

const genericYAML = `generic:
  pagination: {perPage: 10, perPool: 10, perPoolInitial: 5}
  delegateOwner: "0xba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1b"
  zeroAddress: "0x0000000000000000000000000000000000000000"
`

func TestParsePools_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown network", data: genericYAML + "networks:\n  solana: {}\n"},
		{name: "duplicate after normalisation", data: genericYAML + "networks:\n  mainnet: {}\n  MAINNET: {}\n"},
		{name: "malformed yaml", data: "networks: [\n"},
		{name: "missing generic", data: "networks:\n  mainnet: {}\n"},
		{name: "empty generic", data: "generic: {}\nnetworks:\n  mainnet: {}\n"},
		{
			name: "unknown factory type in generic",
			data: genericYAML + "  factories:\n    \"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9\": bogusPool\n",
		},
		{
			name: "unknown factory type in network",
			data: genericYAML + "networks:\n  polygon:\n    factories:\n      \"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9\": bogusPool\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePools([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadPoolsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(poolsYAML), 0o600))

	table, err := LoadPoolsFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Networks(), 2)

	_, err = LoadPoolsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParsePools_GenericOnly(t *testing.T) {
	table, err := ParsePools([]byte(genericYAML))
	require.NoError(t, err)
	assert.Empty(t, table.Networks())

	optimism, ok := table.Lookup(types.NetworkOptimism)
	assert.False(t, ok)
	assert.Equal(t, pools.Pagination{PerPage: 10, PerPool: 10, PerPoolInitial: 5}, optimism.Pagination)
	assert.Equal(t, "0xba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1b", optimism.DelegateOwner)
}
