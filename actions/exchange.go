// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// pool is an exchange loaded into a single call. Reserves are read once and
// written back with [pool.save].
type pool struct {
	address       codec.Address
	record        *storage.Exchange
	reserveNative uint64
	ledger        asset.FungibleAsset
}

func loadPool(ctx context.Context, r chain.Rules, mu state.Mutable, exchange codec.Address) (*pool, error) {
	record, exists, err := storage.GetExchange(ctx, mu, exchange)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrExchangeNotFound
	}
	reserveNative, err := storage.GetBalance(ctx, mu, exchange)
	if err != nil {
		return nil, err
	}
	return &pool{
		address:       exchange,
		record:        record,
		reserveNative: reserveNative,
		ledger:        r.FungibleAsset(mu, record.Asset),
	}, nil
}

// loadLivePool loads an exchange that currently has liquidity.
func loadLivePool(ctx context.Context, r chain.Rules, mu state.Mutable, exchange codec.Address) (*pool, error) {
	p, err := loadPool(ctx, r, mu, exchange)
	if err != nil {
		return nil, err
	}
	if p.record.TotalShares == 0 {
		return nil, ErrNotInitialized
	}
	return p, nil
}

func (p *pool) save(ctx context.Context, mu state.Mutable) error {
	return storage.SetExchange(ctx, mu, p.address, p.record)
}

func (p *pool) nativeToAssetInput(nativeIn uint64) (uint64, error) {
	return pricing.PriceGivenInput(nativeIn, p.reserveNative, p.record.ReserveAsset)
}

func (p *pool) nativeToAssetOutput(assetOut uint64) (uint64, error) {
	return pricing.PriceGivenOutput(assetOut, p.reserveNative, p.record.ReserveAsset)
}

func (p *pool) assetToNativeInput(assetIn uint64) (uint64, error) {
	return pricing.PriceGivenInput(assetIn, p.record.ReserveAsset, p.reserveNative)
}

func (p *pool) assetToNativeOutput(nativeOut uint64) (uint64, error) {
	return pricing.PriceGivenOutput(nativeOut, p.record.ReserveAsset, p.reserveNative)
}

// sellNative moves [nativeIn] from [payer] into the pool and pays [assetOut]
// to [recipient].
func (p *pool) sellNative(
	ctx context.Context,
	mu state.Mutable,
	payer codec.Address,
	recipient codec.Address,
	nativeIn uint64,
	assetOut uint64,
) error {
	if err := transferNative(ctx, mu, payer, p.address, nativeIn); err != nil {
		return err
	}
	if err := p.pushAsset(ctx, recipient, assetOut); err != nil {
		return err
	}
	reserveNative, err := smath.Add(p.reserveNative, nativeIn)
	if err != nil {
		return err
	}
	reserveAsset, err := smath.Sub(p.record.ReserveAsset, assetOut)
	if err != nil {
		return err
	}
	p.reserveNative = reserveNative
	p.record.ReserveAsset = reserveAsset
	return p.save(ctx, mu)
}

// sellAsset pulls [assetIn] from [payer] into the pool and pays [nativeOut]
// to [recipient]. When [recipient] is the pool itself the native currency
// stays in its custody.
func (p *pool) sellAsset(
	ctx context.Context,
	mu state.Mutable,
	payer codec.Address,
	recipient codec.Address,
	assetIn uint64,
	nativeOut uint64,
) error {
	if err := p.pullAsset(ctx, payer, assetIn); err != nil {
		return err
	}
	if recipient != p.address {
		if err := transferNative(ctx, mu, p.address, recipient, nativeOut); err != nil {
			return err
		}
	}
	reserveAsset, err := smath.Add(p.record.ReserveAsset, assetIn)
	if err != nil {
		return err
	}
	reserveNative, err := smath.Sub(p.reserveNative, nativeOut)
	if err != nil {
		return err
	}
	p.reserveNative = reserveNative
	p.record.ReserveAsset = reserveAsset
	return p.save(ctx, mu)
}

// pullAsset moves [amount] of the asset from [from] into the pool using the
// allowance [from] granted the pool.
func (p *pool) pullAsset(ctx context.Context, from codec.Address, amount uint64) error {
	ok, err := p.ledger.TransferFrom(ctx, p.address, from, p.address, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetTransferFailed, err)
	}
	if !ok {
		return fmt.Errorf("%w: could not pull %d from %s", ErrAssetTransferFailed, amount, from)
	}
	return nil
}

func (p *pool) pushAsset(ctx context.Context, to codec.Address, amount uint64) error {
	ok, err := p.ledger.Transfer(ctx, p.address, to, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetTransferFailed, err)
	}
	if !ok {
		return fmt.Errorf("%w: could not pay %d to %s", ErrAssetTransferFailed, amount, to)
	}
	return nil
}

func transferNative(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	err := storage.TransferBalance(ctx, mu, from, to, amount)
	if errors.Is(err, storage.ErrInvalidBalance) {
		return fmt.Errorf("%w: %w", ErrInsufficientNativeBalance, err)
	}
	return err
}

func checkDeadline(timestamp int64, deadline int64) error {
	if timestamp > deadline {
		return fmt.Errorf("%w: deadline=%d, now=%d", ErrExpired, deadline, timestamp)
	}
	return nil
}

// checkMinimum fails if [got] is below [minimum]. No swap may pay out
// nothing, so a zero [minimum] is treated as 1.
func checkMinimum(got uint64, minimum uint64) error {
	if got == 0 || got < minimum {
		return fmt.Errorf("%w: got %d, wanted at least %d", ErrSlippageExceeded, got, minimum)
	}
	return nil
}

// exchangeKeys are the keys every call on [exchange] touches.
func exchangeKeys(exchange codec.Address) state.Keys {
	return state.Keys{
		string(storage.ExchangeKey(exchange)): state.All,
		string(storage.BalanceKey(exchange)):  state.All,
	}
}

// nativeToAsset sells [nativeIn] of [actor]'s native currency on [exchange]
// and pays the asset bought to [recipient].
func nativeToAsset(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	actor codec.Address,
	recipient codec.Address,
	exchange codec.Address,
	nativeIn uint64,
	minAssetOut uint64,
	emitter chain.Emitter,
) (uint64, error) {
	if nativeIn == 0 {
		return 0, ErrZeroInput
	}
	p, err := loadLivePool(ctx, r, mu, exchange)
	if err != nil {
		return 0, err
	}
	assetOut, err := p.nativeToAssetInput(nativeIn)
	if err != nil {
		return 0, err
	}
	if err := checkMinimum(assetOut, minAssetOut); err != nil {
		return 0, err
	}
	if err := p.sellNative(ctx, mu, actor, recipient, nativeIn, assetOut); err != nil {
		return 0, err
	}
	emitter.Emit(&Purchase{
		Exchange:  exchange,
		Buyer:     actor,
		NativeIn:  true,
		AmountIn:  nativeIn,
		AmountOut: assetOut,
	})
	return assetOut, nil
}

// assetToNative sells [assetIn] of [actor]'s asset on [exchange] and pays
// the native currency bought to [recipient].
func assetToNative(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	actor codec.Address,
	recipient codec.Address,
	exchange codec.Address,
	assetIn uint64,
	minNativeOut uint64,
	emitter chain.Emitter,
) (uint64, error) {
	if assetIn == 0 {
		return 0, ErrZeroInput
	}
	p, err := loadLivePool(ctx, r, mu, exchange)
	if err != nil {
		return 0, err
	}
	nativeOut, err := p.assetToNativeInput(assetIn)
	if err != nil {
		return 0, err
	}
	if err := checkMinimum(nativeOut, minNativeOut); err != nil {
		return 0, err
	}
	if err := p.sellAsset(ctx, mu, actor, recipient, assetIn, nativeOut); err != nil {
		return 0, err
	}
	emitter.Emit(&Purchase{
		Exchange:  exchange,
		Buyer:     actor,
		AmountIn:  assetIn,
		AmountOut: nativeOut,
	})
	return nativeOut, nil
}
