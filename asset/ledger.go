// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"context"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ FungibleAsset = (*Ledger)(nil)

// Ledger is a [FungibleAsset] whose balances and allowances live in the
// call's state.
type Ledger struct {
	mu    state.Mutable
	asset codec.Address
}

func NewLedger(mu state.Mutable, asset codec.Address) *Ledger {
	return &Ledger{mu: mu, asset: asset}
}

func (l *Ledger) Address() codec.Address {
	return l.asset
}

func (l *Ledger) BalanceOf(ctx context.Context, account codec.Address) (uint64, error) {
	return storage.GetAssetBalance(ctx, l.mu, l.asset, account)
}

func (l *Ledger) Allowance(ctx context.Context, owner codec.Address, spender codec.Address) (uint64, error) {
	return storage.GetAllowance(ctx, l.mu, l.asset, owner, spender)
}

func (l *Ledger) Transfer(ctx context.Context, sender codec.Address, to codec.Address, amount uint64) (bool, error) {
	return l.move(ctx, sender, to, amount)
}

func (l *Ledger) TransferFrom(
	ctx context.Context,
	spender codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) (bool, error) {
	allowance, err := storage.GetAllowance(ctx, l.mu, l.asset, from, spender)
	if err != nil {
		return false, err
	}
	if allowance < amount {
		return false, nil
	}
	ok, err := l.move(ctx, from, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	if amount == 0 {
		return true, nil
	}
	return true, storage.SetAllowance(ctx, l.mu, l.asset, from, spender, allowance-amount)
}

func (l *Ledger) Approve(ctx context.Context, owner codec.Address, spender codec.Address, amount uint64) (bool, error) {
	if err := storage.SetAllowance(ctx, l.mu, l.asset, owner, spender, amount); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Ledger) move(ctx context.Context, from codec.Address, to codec.Address, amount uint64) (bool, error) {
	if amount == 0 {
		return true, nil
	}
	fromBalance, err := storage.GetAssetBalance(ctx, l.mu, l.asset, from)
	if err != nil {
		return false, err
	}
	if fromBalance < amount {
		return false, nil
	}
	if from == to {
		return true, nil
	}
	toBalance, err := storage.GetAssetBalance(ctx, l.mu, l.asset, to)
	if err != nil {
		return false, err
	}
	newToBalance, err := smath.Add(toBalance, amount)
	if err != nil {
		return false, nil
	}
	if err := storage.SetAssetBalance(ctx, l.mu, l.asset, from, fromBalance-amount); err != nil {
		return false, err
	}
	if err := storage.SetAssetBalance(ctx, l.mu, l.asset, to, newToBalance); err != nil {
		return false, err
	}
	return true, nil
}

// Mint credits [amount] new units of the asset to [to].
func Mint(ctx context.Context, mu state.Mutable, asset codec.Address, info *storage.AssetInfo, to codec.Address, amount uint64) error {
	supply, err := smath.Add(info.TotalSupply, amount)
	if err != nil {
		return err
	}
	balance, err := storage.GetAssetBalance(ctx, mu, asset, to)
	if err != nil {
		return err
	}
	newBalance, err := smath.Add(balance, amount)
	if err != nil {
		return err
	}
	info.TotalSupply = supply
	if err := storage.SetAssetInfo(ctx, mu, asset, info); err != nil {
		return err
	}
	return storage.SetAssetBalance(ctx, mu, asset, to, newBalance)
}

// TransferKeys returns the state keys [Ledger.Transfer] touches.
func TransferKeys(asset codec.Address, from codec.Address, to codec.Address) state.Keys {
	return state.Keys{
		string(storage.AssetBalanceKey(asset, from)): state.All,
		string(storage.AssetBalanceKey(asset, to)):   state.All,
	}
}

// TransferFromKeys returns the state keys [Ledger.TransferFrom] touches.
func TransferFromKeys(asset codec.Address, spender codec.Address, from codec.Address, to codec.Address) state.Keys {
	k := TransferKeys(asset, from, to)
	k.Add(string(storage.AllowanceKey(asset, from, spender)), state.All)
	return k
}
