// Package network supplies the active network to the pool configuration.
package network

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/pools-config/internal/types"
)

// Identity reports the network the application is running against
type Identity interface {
	Active() types.Network
	IsMainnet() bool
}

// Static is an Identity fixed at construction time
type Static struct {
	network types.Network
}

// NewStatic creates a Static identity for network
func NewStatic(network types.Network) *Static {
	return &Static{network: network}
}

// Active returns the configured network
func (s *Static) Active() types.Network {
	return s.network
}

// IsMainnet reports whether the configured network is mainnet
func (s *Static) IsMainnet() bool {
	return s.network.IsMainnet()
}

// newRetryClient creates a new HTTP client with retry capabilities
func newRetryClient(timeout time.Duration) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = nil
	return c
}

// DetectFromRPC asks the node at url for its chain id and maps it to a network
func DetectFromRPC(ctx context.Context, url string, timeout time.Duration) (*Static, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpClient := newRetryClient(timeout).StandardClient()
	rpcClient, err := rpc.DialOptions(ctx, url, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc %s: %w", url, err)
	}
	client := ethclient.NewClient(rpcClient)
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return nil, fmt.Errorf("%w: chain id %s", types.ErrUnknownNetwork, chainID)
	}

	network, err := types.NetworkFromChainID(chainID.Uint64())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"chain_id": chainID.Uint64(),
		"network":  network,
	}).Info("Detected active network from RPC")

	return NewStatic(network), nil
}
