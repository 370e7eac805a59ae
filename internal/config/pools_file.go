package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/pools-config/internal/pools"
	"github.com/yourorg/pools-config/internal/types"
	"gopkg.in/yaml.v3"
)

// PoolsFile is the on-disk form of an alternate pools table
type PoolsFile struct {
	Generic  *pools.Pools           `yaml:"generic"`
	Networks map[string]pools.Pools `yaml:"networks"`
}

// LoadPoolsFile reads an alternate pools table from a YAML file
func LoadPoolsFile(path string) (*pools.Table, error) {
	logrus.Infof("Loading pools table from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pools file %s: %w", path, err)
	}
	return ParsePools(data)
}

// ParsePools decodes a YAML pools table
func ParsePools(data []byte) (*pools.Table, error) {
	var file PoolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pools data: %w", err)
	}

	if file.Generic == nil {
		return nil, fmt.Errorf("pools file: generic record is required")
	}
	if err := checkGeneric(*file.Generic); err != nil {
		return nil, fmt.Errorf("pools file: generic: %w", err)
	}
	if err := checkFactories(*file.Generic); err != nil {
		return nil, fmt.Errorf("pools file: generic: %w", err)
	}

	entries := make(map[types.Network]pools.Pools, len(file.Networks))
	for name, p := range file.Networks {
		network, err := types.ParseNetwork(name)
		if err != nil {
			return nil, fmt.Errorf("pools file: %w", err)
		}
		if _, dup := entries[network]; dup {
			return nil, fmt.Errorf("pools file: network %s listed twice", network)
		}
		if err := checkFactories(p); err != nil {
			return nil, fmt.Errorf("pools file: %s: %w", network, err)
		}
		entries[network] = p
	}

	logrus.WithField("networks", len(entries)).Info("Pools table loaded")
	return pools.NewTableFrom(entries, *file.Generic), nil
}

// checkGeneric rejects a fallback record missing the fields every lookup relies on
func checkGeneric(p pools.Pools) error {
	if p.Pagination.PerPage <= 0 || p.Pagination.PerPool <= 0 || p.Pagination.PerPoolInitial <= 0 {
		return fmt.Errorf("pagination values must be positive, got %+v", p.Pagination)
	}
	if p.DelegateOwner == "" {
		return fmt.Errorf("delegateOwner is required")
	}
	if p.ZeroAddress == "" {
		return fmt.Errorf("zeroAddress is required")
	}
	return nil
}

func checkFactories(p pools.Pools) error {
	for address, ft := range p.Factories {
		if !ft.Valid() {
			return fmt.Errorf("factory %s: unknown factory type %q", address, ft)
		}
	}
	return nil
}
