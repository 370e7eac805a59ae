package pools

import (
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/yourorg/pools-config/internal/types"
)

// APRThreshold is the APR at or above which consumers hide the value. Such
// figures come from pools with near-zero balances, e.g. completed LBPs.
const APRThreshold = 10_000

// ShallowComposableStableBuffer is subtracted from a user's BPT balance, in wei,
// when computing a proportional exit from a composable stable pool.
const ShallowComposableStableBuffer int64 = params.GWei

const (
	mainnetMinFiatValuePoolMigration = 100_000
	defaultMinFiatValuePoolMigration = 1
)

// ShallowComposableStableBufferWei returns ShallowComposableStableBuffer as a big.Int
func ShallowComposableStableBufferWei() *big.Int {
	return big.NewInt(ShallowComposableStableBuffer)
}

// MinFiatValuePoolMigration returns the minimum pool value, in fiat units,
// for a pool to be offered for migration.
func MinFiatValuePoolMigration(isMainnet bool) float64 {
	if isMainnet {
		return mainnetMinFiatValuePoolMigration
	}
	return defaultMinFiatValuePoolMigration
}

// Table is the immutable set of per-network records plus the generic fallback.
// It is safe for concurrent reads.
type Table struct {
	entries map[types.Network]Pools
	generic Pools
}

// NewTable builds the table from the built-in records
func NewTable() *Table {
	entries := make(map[types.Network]Pools, len(types.SupportedNetworks))
	for _, n := range types.SupportedNetworks {
		if p, ok := networkPools(n); ok {
			entries[n] = p
		}
	}
	return &Table{entries: entries, generic: genericPools()}
}

// NewTableFrom builds a table from caller supplied records. The records are
// copied, so later changes to the arguments do not leak into the table.
func NewTableFrom(entries map[types.Network]Pools, generic Pools) *Table {
	t := &Table{
		entries: make(map[types.Network]Pools, len(entries)),
		generic: generic.Clone(),
	}
	for n, p := range entries {
		t.entries[n] = p.Clone()
	}
	return t
}

// Get returns the record of network, or the generic record when the table
// has no entry for it. Presence of the key decides: a network with an empty
// record gets its empty record.
func (t *Table) Get(network types.Network) Pools {
	p, _ := t.Lookup(network)
	return p
}

// Lookup is Get that also reports whether the network had its own record
func (t *Table) Lookup(network types.Network) (Pools, bool) {
	if p, ok := t.entries[network]; ok {
		return p.Clone(), true
	}
	return t.generic.Clone(), false
}

// Generic returns the fallback record
func (t *Table) Generic() Pools {
	return t.generic.Clone()
}

// Networks returns the networks owning a record, sorted by name
func (t *Table) Networks() []types.Network {
	out := make([]types.Network, 0, len(t.entries))
	for n := range t.entries {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NetworkIdentity supplies the active network
type NetworkIdentity interface {
	Active() types.Network
	IsMainnet() bool
}

// Active is the configuration resolved for the active network
type Active struct {
	Network                   types.Network `json:"network"`
	Fallback                  bool          `json:"fallback"`
	Pools                     Pools         `json:"pools"`
	MinFiatValuePoolMigration float64       `json:"minFiatValuePoolMigration"`
}

// Resolve reads the active network once and returns its configuration.
// Callers re-run Resolve when the active network changes.
func Resolve(t *Table, id NetworkIdentity) Active {
	network := id.Active()
	p, ok := t.Lookup(network)
	return Active{
		Network:                   network,
		Fallback:                  !ok,
		Pools:                     p,
		MinFiatValuePoolMigration: MinFiatValuePoolMigration(id.IsMainnet()),
	}
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if equalHex(v, id) {
			return true
		}
	}
	return false
}

func equalHex(a, b string) bool {
	return strings.EqualFold(a, b)
}
