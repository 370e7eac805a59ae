// Package types contains shared type definitions used across multiple packages
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNetwork is returned when a name or chain id does not match a known network
var ErrUnknownNetwork = errors.New("unknown network")

// Network identifies a blockchain network the pool listing knows about
type Network string

// Known blockchain networks
const (
	NetworkMainnet  Network = "mainnet"
	NetworkGoerli   Network = "goerli"
	NetworkPolygon  Network = "polygon"
	NetworkArbitrum Network = "arbitrum"

	// NetworkOptimism is recognised but has no pools record of its own.
	NetworkOptimism Network = "optimism"
)

// SupportedNetworks lists the networks that own a pools record, in display order
var SupportedNetworks = []Network{
	NetworkMainnet,
	NetworkGoerli,
	NetworkPolygon,
	NetworkArbitrum,
}

var chainIDs = map[Network]uint64{
	NetworkMainnet:  1,
	NetworkGoerli:   5,
	NetworkPolygon:  137,
	NetworkArbitrum: 42161,
	NetworkOptimism: 10,
}

// String implements fmt.Stringer
func (n Network) String() string {
	return string(n)
}

// ChainID returns the EVM chain id of the network, or 0 if unknown
func (n Network) ChainID() uint64 {
	return chainIDs[n]
}

// IsMainnet reports whether n is the primary production network
func (n Network) IsMainnet() bool {
	return n == NetworkMainnet
}

// ParseNetwork converts a case-insensitive network name into a Network
func ParseNetwork(name string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := chainIDs[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
	return n, nil
}

// NetworkFromChainID maps an EVM chain id to a known Network
func NetworkFromChainID(chainID uint64) (Network, error) {
	for n, id := range chainIDs {
		if id == chainID {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: chain id %d", ErrUnknownNetwork, chainID)
}
