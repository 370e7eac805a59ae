package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/pools-config/internal/config"
	"github.com/yourorg/pools-config/internal/types"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	t.Run("invalid network", func(t *testing.T) {
		t.Setenv("ACTIVE_NETWORK", "solana")

		err := run()
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrUnknownNetwork)
	})

	t.Run("missing pools file", func(t *testing.T) {
		t.Setenv("ACTIVE_NETWORK", "mainnet")
		t.Setenv("POOLS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load pools table")
	})
}

func TestLoadTable_Builtin(t *testing.T) {
	table, err := loadTable(config.Config{})
	require.NoError(t, err)
	assert.Len(t, table.Networks(), 4)
}

func TestResolveIdentity_Static(t *testing.T) {
	id := resolveIdentity(context.Background(), config.Config{ActiveNetwork: types.NetworkPolygon})
	assert.Equal(t, types.NetworkPolygon, id.Active())
}
