// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// TypeIDs for actions and their results
const (
	// Factory
	LaunchExchangeID uint8 = iota

	// Exchange
	InitializeExchangeID
	NativeToAssetSwapID
	NativeToAssetPaymentID
	AssetToNativeSwapID
	AssetToNativePaymentID
	NativeToAssetSwapOutputID
	AssetToNativeSwapOutputID
	DepositAsSwapID
	AssetToAssetSwapID
	AssetToAssetPaymentID
	InvestLiquidityID
	DivestLiquidityID

	// Asset ledger
	CreateAssetID
	MintAssetID
	TransferAssetID
	ApproveAssetID
	TransferNativeID
)

// TypeIDs for events
const (
	ExchangeLaunchedID uint8 = iota
	PurchaseID
	InvestmentID
	DivestmentID
)

// TypeIDs for address generation
const (
	AccountAddressID uint8 = iota
	AssetAddressID
	ExchangeAddressID
)
