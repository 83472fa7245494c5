// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	// Factory
	ErrInvalidAsset          = errors.New("invalid asset")
	ErrExchangeAlreadyExists = errors.New("exchange already exists")
	ErrExchangeNotFound      = errors.New("exchange not found")

	// Exchange preconditions
	ErrAlreadyInitialized     = errors.New("exchange already initialized")
	ErrNotInitialized         = errors.New("exchange not initialized")
	ErrInvalidBootstrapAmount = errors.New("invalid bootstrap amount")
	ErrExpired                = errors.New("deadline expired")
	ErrZeroInput              = errors.New("zero input")
	ErrInvalidRecipient       = errors.New("invalid recipient")

	// Bounds
	ErrSlippageExceeded            = errors.New("slippage exceeded")
	ErrExcessiveInput              = errors.New("required input exceeds maximum")
	ErrInsufficientSharesPurchased = errors.New("insufficient shares purchased")
	ErrInsufficientNativeSent      = errors.New("insufficient native sent")
	ErrInsufficientShares          = errors.New("insufficient shares")
	ErrExcessiveDivestment         = errors.New("divestment below minimum output")

	// Chained swaps
	ErrInvalidPurchasedAsset  = errors.New("invalid purchased asset")
	ErrInvalidExchangeAddress = errors.New("invalid exchange address")

	// Asset ledger
	ErrAssetTransferFailed       = errors.New("asset transfer failed")
	ErrValueZero                 = errors.New("value is zero")
	ErrAssetNameEmpty            = errors.New("asset name is empty")
	ErrAssetNameTooLarge         = errors.New("asset name is too large")
	ErrAssetSymbolEmpty          = errors.New("asset symbol is empty")
	ErrAssetSymbolTooLarge       = errors.New("asset symbol is too large")
	ErrAssetMetadataTooLarge     = errors.New("asset metadata is too large")
	ErrAssetDecimalsTooLarge     = errors.New("asset decimals are too large")
	ErrAssetAlreadyExists        = errors.New("asset already exists")
	ErrAssetDoesNotExist         = errors.New("asset does not exist")
	ErrNotAssetOwner             = errors.New("actor is not asset owner")
	ErrInsufficientAssetBalance  = errors.New("insufficient asset balance")
	ErrInsufficientNativeBalance = errors.New("insufficient native balance")
)
