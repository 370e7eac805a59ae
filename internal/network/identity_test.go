package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/pools-config/internal/types"
)

// chainIDServer answers eth_chainId with the given hex value
func chainIDServer(t *testing.T, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_chainId", req.Method)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func TestStatic(t *testing.T) {
	s := NewStatic(types.NetworkMainnet)
	assert.Equal(t, types.NetworkMainnet, s.Active())
	assert.True(t, s.IsMainnet())

	s = NewStatic(types.NetworkArbitrum)
	assert.False(t, s.IsMainnet())
}

func TestDetectFromRPC(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		want    types.Network
		wantErr bool
	}{
		{name: "mainnet", result: "0x1", want: types.NetworkMainnet},
		{name: "polygon", result: "0x89", want: types.NetworkPolygon},
		{name: "arbitrum", result: "0xa4b1", want: types.NetworkArbitrum},
		{name: "unknown chain", result: "0x38", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chainIDServer(t, tt.result)
			defer srv.Close()

			id, err := DetectFromRPC(context.Background(), srv.URL, 5*time.Second)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrUnknownNetwork)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Active())
		})
	}
}
