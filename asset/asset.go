// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -package=assetmock -destination=assetmock/fungible_asset.go -mock_names=FungibleAsset=FungibleAsset . FungibleAsset

package asset

import (
	"context"

	"github.com/ava-labs/ammvm/codec"
)

// FungibleAsset is the ledger of a single asset an exchange trades against.
//
// Transfer, TransferFrom and Approve return false when the ledger rejects the
// operation (for example on insufficient balance or allowance). Exchanges
// treat both a false return and an error as a failed call.
type FungibleAsset interface {
	Address() codec.Address

	BalanceOf(ctx context.Context, account codec.Address) (uint64, error)
	Allowance(ctx context.Context, owner codec.Address, spender codec.Address) (uint64, error)

	// Transfer moves [amount] from [sender] to [to].
	Transfer(ctx context.Context, sender codec.Address, to codec.Address, amount uint64) (bool, error)
	// TransferFrom moves [amount] from [from] to [to] using the allowance
	// [from] granted [spender].
	TransferFrom(ctx context.Context, spender codec.Address, from codec.Address, to codec.Address, amount uint64) (bool, error)
	// Approve sets the allowance [owner] grants [spender].
	Approve(ctx context.Context, owner codec.Address, spender codec.Address, amount uint64) (bool, error)
}
