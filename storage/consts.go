// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	// Native currency
	balancePrefix byte = iota

	// Asset ledger
	assetInfoPrefix
	assetBalancePrefix
	allowancePrefix

	// Exchanges
	exchangePrefix
	sharesPrefix

	// Factory
	assetToExchangePrefix
	exchangeToAssetPrefix
	exchangeCountPrefix

	// Result index (written outside of call state)
	resultPrefix
	resultSequencePrefix
	genesisPrefix
)

// Chunks
const (
	BalanceChunks         uint16 = 1
	AssetInfoChunks       uint16 = 6
	AssetBalanceChunks    uint16 = 1
	AllowanceChunks       uint16 = 1
	ExchangeChunks        uint16 = 1
	SharesChunks          uint16 = 1
	ExchangeMappingChunks uint16 = 1
	ExchangeCountChunks   uint16 = 1
)

// Limits on asset metadata
const (
	MaxAssetNameSize     = 64
	MaxAssetSymbolSize   = 8
	MaxAssetMetadataSize = 256
	MaxAssetDecimals     = 18
)
