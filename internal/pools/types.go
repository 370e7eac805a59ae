// Package pools holds the per-network pool listing configuration: named pool ids,
// allow and block lists, pagination, factory tags and display metadata.
package pools

// FactoryType tags the pool category a factory contract deploys
type FactoryType string

// Factory pool categories
const (
	FactoryOracleWeighted         FactoryType = "oracleWeightedPool"
	FactoryWeighted               FactoryType = "weightedPool"
	FactoryStable                 FactoryType = "stablePool"
	FactoryManaged                FactoryType = "managedPool"
	FactoryLiquidityBootstrapping FactoryType = "liquidityBootstrappingPool"
	FactoryBoosted                FactoryType = "boostedPool"
	FactoryComposableStable       FactoryType = "composableStablePool"
)

// FactoryTypes returns every FactoryType value
func FactoryTypes() []FactoryType {
	return []FactoryType{
		FactoryOracleWeighted,
		FactoryWeighted,
		FactoryStable,
		FactoryManaged,
		FactoryLiquidityBootstrapping,
		FactoryBoosted,
		FactoryComposableStable,
	}
}

// Valid reports whether f is one of the enumerated factory types
func (f FactoryType) Valid() bool {
	switch f {
	case FactoryOracleWeighted, FactoryWeighted, FactoryStable, FactoryManaged,
		FactoryLiquidityBootstrapping, FactoryBoosted, FactoryComposableStable:
		return true
	}
	return false
}

// PoolNickname is a human readable key of the ids map
type PoolNickname string

// Known pool nicknames
const (
	NicknameStaBAL    PoolNickname = "staBAL"
	NicknameBbAaveUSD PoolNickname = "bbAaveUSD"
	NicknameXMatic    PoolNickname = "xMatic"
	NicknameStMatic   PoolNickname = "stMatic"
	NicknameMai4      PoolNickname = "mai4"
	NicknameVeBAL     PoolNickname = "veBAL"
)

// Nicknames returns every PoolNickname in declaration order
func Nicknames() []PoolNickname {
	return []PoolNickname{
		NicknameStaBAL,
		NicknameBbAaveUSD,
		NicknameXMatic,
		NicknameStMatic,
		NicknameMai4,
		NicknameVeBAL,
	}
}

// VersionedPool holds the ids of two generations of the same pool
type VersionedPool struct {
	V1 string `json:"v1" yaml:"v1"`
	V2 string `json:"v2" yaml:"v2"`
}

// Mai4Pools holds the MAI stable pool and its boosted sibling
type Mai4Pools struct {
	Mai4      string `json:"mai4" yaml:"mai4"`
	MaiBbaUsd string `json:"maiBbaUsd" yaml:"maiBbaUsd"`
}

// NamedPools maps nicknames to pool ids. A nil field means the pool does not
// exist on that network.
type NamedPools struct {
	StaBAL    *string        `json:"staBAL,omitempty" yaml:"staBAL,omitempty"`
	BbAaveUSD *VersionedPool `json:"bbAaveUSD,omitempty" yaml:"bbAaveUSD,omitempty"`
	XMatic    *VersionedPool `json:"xMatic,omitempty" yaml:"xMatic,omitempty"`
	StMatic   *VersionedPool `json:"stMatic,omitempty" yaml:"stMatic,omitempty"`
	Mai4      *Mai4Pools     `json:"mai4,omitempty" yaml:"mai4,omitempty"`
	VeBAL     *string        `json:"veBAL,omitempty" yaml:"veBAL,omitempty"`
}

// IDs returns the pool ids registered under nickname, in declaration order.
// The second result is false when the nickname is absent on this network.
func (n NamedPools) IDs(nickname PoolNickname) ([]string, bool) {
	switch nickname {
	case NicknameStaBAL:
		if n.StaBAL != nil {
			return []string{*n.StaBAL}, true
		}
	case NicknameBbAaveUSD:
		if n.BbAaveUSD != nil {
			return []string{n.BbAaveUSD.V1, n.BbAaveUSD.V2}, true
		}
	case NicknameXMatic:
		if n.XMatic != nil {
			return []string{n.XMatic.V1, n.XMatic.V2}, true
		}
	case NicknameStMatic:
		if n.StMatic != nil {
			return []string{n.StMatic.V1, n.StMatic.V2}, true
		}
	case NicknameMai4:
		if n.Mai4 != nil {
			return []string{n.Mai4.Mai4, n.Mai4.MaiBbaUsd}, true
		}
	case NicknameVeBAL:
		if n.VeBAL != nil {
			return []string{*n.VeBAL}, true
		}
	}
	return nil, false
}

// AllIDs returns every pool id present in the map
func (n NamedPools) AllIDs() []string {
	var ids []string
	for _, nick := range Nicknames() {
		if v, ok := n.IDs(nick); ok {
			ids = append(ids, v...)
		}
	}
	return ids
}

// Pagination controls how many pools the listing shows at a time
type Pagination struct {
	PerPage        int `json:"perPage" yaml:"perPage"`
	PerPool        int `json:"perPool" yaml:"perPool"`
	PerPoolInitial int `json:"perPoolInitial" yaml:"perPoolInitial"`
}

// DynamicFees lists pools whose swap fee is managed off-chain
type DynamicFees struct {
	Gauntlet []string `json:"gauntlet" yaml:"gauntlet"`
}

// AllowList is an explicit inclusion set of pool ids
type AllowList struct {
	AllowList []string `json:"allowList" yaml:"allowList"`
}

// PoolMetadata is display information for a single pool
type PoolMetadata struct {
	Name    string `json:"name" yaml:"name"`
	HasIcon bool   `json:"hasIcon" yaml:"hasIcon"`
}

// Pools is the complete listing configuration of one network
type Pools struct {
	IDsMap            NamedPools              `json:"idsMap" yaml:"idsMap"`
	Pagination        Pagination              `json:"pagination" yaml:"pagination"`
	DelegateOwner     string                  `json:"delegateOwner" yaml:"delegateOwner"`
	ZeroAddress       string                  `json:"zeroAddress" yaml:"zeroAddress"`
	DynamicFees       DynamicFees             `json:"dynamicFees" yaml:"dynamicFees"`
	BlockList         []string                `json:"blockList" yaml:"blockList"`
	ExcludedPoolTypes []string                `json:"excludedPoolTypes" yaml:"excludedPoolTypes"`
	Stable            AllowList               `json:"stable" yaml:"stable"`
	Investment        AllowList               `json:"investment" yaml:"investment"`
	Factories         map[string]FactoryType  `json:"factories" yaml:"factories"`
	Stakable          AllowList               `json:"stakable" yaml:"stakable"`
	Metadata          map[string]PoolMetadata `json:"metadata" yaml:"metadata"`
}

// IsBlocked reports whether id is on the block list. The empty string never matches.
func (p Pools) IsBlocked(id string) bool {
	if id == "" {
		return false
	}
	return containsID(p.BlockList, id)
}

// FactoryTypeOf returns the pool category of a factory address
func (p Pools) FactoryTypeOf(address string) (FactoryType, bool) {
	if address == "" {
		return "", false
	}
	for k, v := range p.Factories {
		if equalHex(k, address) {
			return v, true
		}
	}
	return "", false
}

// Clone returns a deep copy of p. Nil slices and maps stay nil.
func (p Pools) Clone() Pools {
	c := p
	c.IDsMap = p.IDsMap.clone()
	c.DynamicFees.Gauntlet = cloneStrings(p.DynamicFees.Gauntlet)
	c.BlockList = cloneStrings(p.BlockList)
	c.ExcludedPoolTypes = cloneStrings(p.ExcludedPoolTypes)
	c.Stable.AllowList = cloneStrings(p.Stable.AllowList)
	c.Investment.AllowList = cloneStrings(p.Investment.AllowList)
	c.Stakable.AllowList = cloneStrings(p.Stakable.AllowList)
	if p.Factories != nil {
		c.Factories = make(map[string]FactoryType, len(p.Factories))
		for k, v := range p.Factories {
			c.Factories[k] = v
		}
	}
	if p.Metadata != nil {
		c.Metadata = make(map[string]PoolMetadata, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

func (n NamedPools) clone() NamedPools {
	c := NamedPools{
		StaBAL: cloneString(n.StaBAL),
		VeBAL:  cloneString(n.VeBAL),
	}
	if n.BbAaveUSD != nil {
		v := *n.BbAaveUSD
		c.BbAaveUSD = &v
	}
	if n.XMatic != nil {
		v := *n.XMatic
		c.XMatic = &v
	}
	if n.StMatic != nil {
		v := *n.StMatic
		c.StMatic = &v
	}
	if n.Mai4 != nil {
		v := *n.Mai4
		c.Mai4 = &v
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
