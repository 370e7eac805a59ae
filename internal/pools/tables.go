package pools

import (
	"github.com/yourorg/pools-config/internal/types"
)

const (
	delegateOwner = "0xba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1ba1b"
	zeroAddress   = "0x0000000000000000000000000000000000000000"

	boostedAaveUSDName = "Balancer Boosted Aave USD"
)

// Mainnet pool ids
const (
	mainnetStaBAL      = "0x06df3b2bbb68adc8b0e302443692037ed9f91b42000000000000000000000063"
	mainnetBbAaveUSDV1 = "0x7b50775383d3d6f0215a8f290f2c9e2eebbeceb20000000000000000000000fe"
	mainnetBbAaveUSDV2 = "0xa13a9247ea42d743238089903570127dda72fe4400000000000000000000035d"
	mainnetVeBAL       = "0x5c6ee304399dbdb9c8ef030ab642b10820db8f56000200000000000000000014"
	mainnetBbEulerUSD  = "0x50cf90b954958480b8df7958a9e965752f62712400000000000000000000046f"
)

// Goerli pool ids
const (
	goerliStaBAL      = "0xdcdd4a3d36dec8d57594e89763d069a7e9b223e2000000000000000000000062"
	goerliBbAaveUSDV1 = "0x13acd41c585d7ebb4a9460f7c8f50be60dc080cd00000000000000000000005f"
	goerliBbAaveUSDV2 = "0x3d5981bdd8d3e49eb7bbdc1d2b156a3ee019c18e0000000000000000000001a7"
	goerliVeBAL       = "0xf8a0623ab66f985effc1c69d05f1af4badb01b00000200000000000000000060"
)

// Polygon pool ids
const (
	polygonBbAaveUSDV1 = "0x48e6b98ef6329f8f0a30ebb8c7c960330d64808500000000000000000000075b"
	polygonBbAaveUSDV2 = "0xff4ce5aaab5a627bf82f4a571ab1ce94aa365ea6000000000000000000000426"
	polygonXMaticV1    = "0xc17636e36398602dd37bb5d1b3a9008c7629005f0002000000000000000004c4"
	polygonXMaticV2    = "0xb20fc01d21a50d2c734c4a1262b4404d41fa7bf000000000000000000000075c"
	polygonStMaticV1   = "0xaf5e0b5425de1f5a630a8cb5aa9d97b8141c908d000200000000000000000366"
	polygonStMaticV2   = "0x8159462d255c1d24915cb51ec361f700174cd99400000000000000000000075d"
	polygonMai4        = "0x06df3b2bbb68adc8b0e302443692037ed9f91b42000000000000000000000012"
	polygonMaiBbaUsd   = "0xb54b2125b711cd183edd3dd09433439d5396165200000000000000000000075e"
)

// Arbitrum pool ids
const (
	arbitrumBbAaveUSDV1 = "0x5a5884fc31948d59df2aeccca143de900d49e1a300000000000000000000006f"
	arbitrumBbAaveUSDV2 = "0xee02583596aee94cccb7e8ccd3921d955f17982a00000000000000000000040a"
)

// baseTemplate is the record every network starts from. List fields are empty,
// not nil, so they serialise as [] for consumers.
func baseTemplate() Pools {
	return Pools{
		Pagination: Pagination{
			PerPage:        10,
			PerPool:        10,
			PerPoolInitial: 5,
		},
		DelegateOwner:     delegateOwner,
		ZeroAddress:       zeroAddress,
		DynamicFees:       DynamicFees{Gauntlet: []string{}},
		BlockList:         []string{},
		ExcludedPoolTypes: []string{"Element", "AaveLinear", "Linear", "ERC4626Linear", "FX"},
		Stable:            AllowList{AllowList: []string{}},
		Investment:        AllowList{AllowList: []string{}},
		Factories:         map[string]FactoryType{},
		Stakable:          AllowList{AllowList: []string{}},
		Metadata:          map[string]PoolMetadata{},
	}
}

// networkPools returns the literal record for a network. The switch is
// exhaustive over the networks that own a record; adding a network means
// adding a case here and to types.SupportedNetworks.
func networkPools(n types.Network) (Pools, bool) {
	switch n {
	case types.NetworkMainnet:
		return mainnetPools(), true
	case types.NetworkGoerli:
		return goerliPools(), true
	case types.NetworkPolygon:
		return polygonPools(), true
	case types.NetworkArbitrum:
		return arbitrumPools(), true
	default:
		return Pools{}, false
	}
}

func mainnetPools() Pools {
	p := baseTemplate()
	p.IDsMap = NamedPools{
		StaBAL:    strPtr(mainnetStaBAL),
		BbAaveUSD: &VersionedPool{V1: mainnetBbAaveUSDV1, V2: mainnetBbAaveUSDV2},
		VeBAL:     strPtr(mainnetVeBAL),
	}
	p.DynamicFees.Gauntlet = []string{
		"0x0b09dea16768f0799065c475be02919503cb2a3500020000000000000000001a",
		"0x96646936b91d6b9d7d0c47c496afbf3d6ec7b6f8000200000000000000000019",
		"0xa6f548df93de924d73be7d25dc02554c6bd66db500020000000000000000000e",
	}
	p.BlockList = []string{mainnetBbEulerUSD}
	p.Stable.AllowList = []string{
		mainnetStaBAL,
		mainnetBbAaveUSDV1,
		mainnetBbAaveUSDV2,
	}
	p.Factories = map[string]FactoryType{
		"0xa5bf2ddf098bb0ef6d120c98217dd6b141c74ee0": FactoryOracleWeighted,
		"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9": FactoryWeighted,
		"0xcc508a455f5b0073973107db6a878ddbdab957bc": FactoryWeighted,
		"0xc66ba2b6595d3613ccab350c886ace23866ede24": FactoryStable,
		"0x751a0bc0e3f75b38e01cf25bfce7ff36de1c87de": FactoryLiquidityBootstrapping,
		"0x0f3e0c4218b7b0108a3643cfe9d3ec0d4f57c54e": FactoryLiquidityBootstrapping,
		"0x48767f9f868a4a7b86a90736632f6e44c2df7fa9": FactoryManaged,
		"0xb08e16cfc07c684daa2f93c70323badb2a6cbfd2": FactoryBoosted,
		"0xf9ac7b9df2b3454e841110cce5550bd5ac6f875f": FactoryComposableStable,
	}
	p.Stakable.AllowList = []string{
		mainnetStaBAL,
		mainnetBbAaveUSDV2,
	}
	p.Metadata = map[string]PoolMetadata{
		mainnetBbAaveUSDV1: {Name: boostedAaveUSDName, HasIcon: true},
		mainnetBbAaveUSDV2: {Name: boostedAaveUSDName, HasIcon: true},
	}
	return p
}

func goerliPools() Pools {
	p := baseTemplate()
	p.IDsMap = NamedPools{
		StaBAL:    strPtr(goerliStaBAL),
		BbAaveUSD: &VersionedPool{V1: goerliBbAaveUSDV1, V2: goerliBbAaveUSDV2},
		VeBAL:     strPtr(goerliVeBAL),
	}
	// TODO: drop the empty entry once the goerli block list is repopulated
	p.BlockList = []string{""}
	p.Stable.AllowList = []string{
		goerliStaBAL,
		goerliBbAaveUSDV1,
		goerliBbAaveUSDV2,
	}
	p.Factories = map[string]FactoryType{
		"0xa5bf2ddf098bb0ef6d120c98217dd6b141c74ee0": FactoryOracleWeighted,
		"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9": FactoryWeighted,
		"0xb48cc42c45d262534e46d5965a9ac496f1b7a830": FactoryLiquidityBootstrapping,
		"0xb0c726778c3ae4b3454d85557a48e8fa502bdd6a": FactoryLiquidityBootstrapping,
		"0x41e9036ae350baedcc7107760a020dca3c0731ec": FactoryBoosted,
		"0xb848f50141f3d4255b37ac288c25c109104f2158": FactoryComposableStable,
	}
	p.Stakable.AllowList = []string{goerliBbAaveUSDV2}
	p.Metadata = map[string]PoolMetadata{
		goerliBbAaveUSDV1: {Name: boostedAaveUSDName, HasIcon: true},
		goerliBbAaveUSDV2: {Name: boostedAaveUSDName, HasIcon: true},
	}
	return p
}

func polygonPools() Pools {
	p := baseTemplate()
	p.IDsMap = NamedPools{
		BbAaveUSD: &VersionedPool{V1: polygonBbAaveUSDV1, V2: polygonBbAaveUSDV2},
		XMatic:    &VersionedPool{V1: polygonXMaticV1, V2: polygonXMaticV2},
		StMatic:   &VersionedPool{V1: polygonStMaticV1, V2: polygonStMaticV2},
		Mai4:      &Mai4Pools{Mai4: polygonMai4, MaiBbaUsd: polygonMaiBbaUsd},
	}
	p.BlockList = []string{""}
	p.Stable.AllowList = []string{
		polygonMai4,
		polygonMaiBbaUsd,
		polygonBbAaveUSDV1,
		polygonBbAaveUSDV2,
		polygonXMaticV2,
		polygonStMaticV2,
	}
	p.Factories = map[string]FactoryType{
		"0xa5bf2ddf098bb0ef6d120c98217dd6b141c74ee0": FactoryOracleWeighted,
		"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9": FactoryWeighted,
		"0xc66ba2b6595d3613ccab350c886ace23866ede24": FactoryStable,
		"0x751a0bc0e3f75b38e01cf25bfce7ff36de1c87de": FactoryLiquidityBootstrapping,
		"0x0e39c3d9b2ec765efd9c5c70bb290b1fcd8536e3": FactoryManaged,
		"0x136fd06fa01ecf624c7f2b3cb15742c1339dc2c4": FactoryComposableStable,
	}
	p.Stakable.AllowList = []string{
		polygonXMaticV2,
		polygonStMaticV2,
		polygonBbAaveUSDV2,
	}
	p.Metadata = map[string]PoolMetadata{
		polygonBbAaveUSDV1: {Name: boostedAaveUSDName, HasIcon: true},
		polygonBbAaveUSDV2: {Name: boostedAaveUSDName, HasIcon: true},
		polygonMaiBbaUsd:   {Name: "MAI bb-am-USD", HasIcon: false},
	}
	return p
}

func arbitrumPools() Pools {
	p := baseTemplate()
	p.IDsMap = NamedPools{
		BbAaveUSD: &VersionedPool{V1: arbitrumBbAaveUSDV1, V2: arbitrumBbAaveUSDV2},
	}
	p.BlockList = []string{""}
	p.Stable.AllowList = []string{
		arbitrumBbAaveUSDV1,
		arbitrumBbAaveUSDV2,
	}
	p.Factories = map[string]FactoryType{
		"0x7dfdef5f355096603419239ce743bfaf1120312b": FactoryWeighted,
		"0xcf0a32bbef8f064969f21f7e02328fb577382018": FactoryWeighted,
		"0x2433477a10fc5d31b9513c638f19ee85caed53fd": FactoryStable,
		"0x142b9666a0a3a30477b052962dda81547e7029ab": FactoryLiquidityBootstrapping,
		"0xaaae2b9703dc9f8ad0fa2ef4d6a72c5ef5da7d3a": FactoryBoosted,
		"0xbbf9d705b75f408cfcaee91da32966124d2c6f7d": FactoryComposableStable,
	}
	p.Stakable.AllowList = []string{arbitrumBbAaveUSDV2}
	p.Metadata = map[string]PoolMetadata{
		arbitrumBbAaveUSDV2: {Name: boostedAaveUSDName, HasIcon: true},
	}
	return p
}

// genericPools is the fallback for networks without a record of their own.
// It carries the mainnet ids and metadata without mainnet's fee and block lists.
func genericPools() Pools {
	p := baseTemplate()
	p.IDsMap = NamedPools{
		StaBAL:    strPtr(mainnetStaBAL),
		BbAaveUSD: &VersionedPool{V1: mainnetBbAaveUSDV1, V2: mainnetBbAaveUSDV2},
		VeBAL:     strPtr(mainnetVeBAL),
	}
	p.BlockList = []string{""}
	p.Stable.AllowList = []string{
		mainnetStaBAL,
		mainnetBbAaveUSDV1,
		mainnetBbAaveUSDV2,
	}
	p.Factories = map[string]FactoryType{
		"0xa5bf2ddf098bb0ef6d120c98217dd6b141c74ee0": FactoryOracleWeighted,
		"0x8e9aa87e45e92bad84d5f8dd1bff34fb92637de9": FactoryWeighted,
		"0xc66ba2b6595d3613ccab350c886ace23866ede24": FactoryStable,
		"0x751a0bc0e3f75b38e01cf25bfce7ff36de1c87de": FactoryLiquidityBootstrapping,
		"0xb08e16cfc07c684daa2f93c70323badb2a6cbfd2": FactoryBoosted,
		"0xf9ac7b9df2b3454e841110cce5550bd5ac6f875f": FactoryComposableStable,
	}
	p.Metadata = map[string]PoolMetadata{
		mainnetBbAaveUSDV1: {Name: boostedAaveUSDName, HasIcon: true},
		mainnetBbAaveUSDV2: {Name: boostedAaveUSDName, HasIcon: true},
	}
	return p
}

func strPtr(s string) *string {
	return &s
}
