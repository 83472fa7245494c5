// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/storage"
)

// Quote directions accepted by [VM.Quote].
const (
	NativeToAssetInput  = "nativeToAssetInput"
	NativeToAssetOutput = "nativeToAssetOutput"
	AssetToNativeInput  = "assetToNativeInput"
	AssetToNativeOutput = "assetToNativeOutput"
)

// ExchangeState is an exchange record together with its native reserve.
type ExchangeState struct {
	Exchange      codec.Address `json:"exchange"`
	Asset         codec.Address `json:"asset"`
	ReserveNative uint64        `json:"reserveNative"`
	ReserveAsset  uint64        `json:"reserveAsset"`
	TotalShares   uint64        `json:"totalShares"`
	Initialized   bool          `json:"initialized"`
}

func (vm *VM) state() *storage.ReadOnly {
	return storage.NewReadOnly(vm.db)
}

// GetExchange returns the state of [exchange] and whether it exists. The
// record and the native reserve are read from the same committed state.
func (vm *VM) GetExchange(ctx context.Context, exchange codec.Address) (*ExchangeState, bool, error) {
	vm.commitLock.RLock()
	defer vm.commitLock.RUnlock()

	im := vm.state()
	record, exists, err := storage.GetExchange(ctx, im, exchange)
	if err != nil || !exists {
		return nil, false, err
	}
	reserveNative, err := storage.GetBalance(ctx, im, exchange)
	if err != nil {
		return nil, false, err
	}
	return &ExchangeState{
		Exchange:      exchange,
		Asset:         record.Asset,
		ReserveNative: reserveNative,
		ReserveAsset:  record.ReserveAsset,
		TotalShares:   record.TotalShares,
		Initialized:   record.Initialized,
	}, true, nil
}

// AssetInfo returns the metadata of [asset] and whether it exists.
func (vm *VM) AssetInfo(ctx context.Context, asset codec.Address) (*storage.AssetInfo, bool, error) {
	return storage.GetAssetInfo(ctx, vm.state(), asset)
}

// TokenToExchange returns the exchange of [asset] or the empty address.
func (vm *VM) TokenToExchange(ctx context.Context, asset codec.Address) (codec.Address, error) {
	return storage.GetExchangeForAsset(ctx, vm.state(), asset)
}

// ExchangeToToken returns the asset of [exchange] or the empty address.
func (vm *VM) ExchangeToToken(ctx context.Context, exchange codec.Address) (codec.Address, error) {
	return storage.GetAssetForExchange(ctx, vm.state(), exchange)
}

func (vm *VM) ExchangeCount(ctx context.Context) (uint64, error) {
	return storage.GetExchangeCount(ctx, vm.state())
}

func (vm *VM) NativeBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetBalance(ctx, vm.state(), addr)
}

func (vm *VM) AssetBalance(ctx context.Context, asset codec.Address, addr codec.Address) (uint64, error) {
	return storage.GetAssetBalance(ctx, vm.state(), asset, addr)
}

func (vm *VM) Allowance(ctx context.Context, asset codec.Address, owner codec.Address, spender codec.Address) (uint64, error) {
	return storage.GetAllowance(ctx, vm.state(), asset, owner, spender)
}

func (vm *VM) SharesOf(ctx context.Context, exchange codec.Address, provider codec.Address) (uint64, error) {
	return storage.GetShares(ctx, vm.state(), exchange, provider)
}

// QuoteNativeToAssetInput returns the asset bought by selling [nativeIn].
func (vm *VM) QuoteNativeToAssetInput(ctx context.Context, exchange codec.Address, nativeIn uint64) (uint64, error) {
	return vm.Quote(ctx, exchange, NativeToAssetInput, nativeIn)
}

// QuoteNativeToAssetOutput returns the native required to buy [assetOut].
func (vm *VM) QuoteNativeToAssetOutput(ctx context.Context, exchange codec.Address, assetOut uint64) (uint64, error) {
	return vm.Quote(ctx, exchange, NativeToAssetOutput, assetOut)
}

// QuoteAssetToNativeInput returns the native bought by selling [assetIn].
func (vm *VM) QuoteAssetToNativeInput(ctx context.Context, exchange codec.Address, assetIn uint64) (uint64, error) {
	return vm.Quote(ctx, exchange, AssetToNativeInput, assetIn)
}

// QuoteAssetToNativeOutput returns the asset required to buy [nativeOut].
func (vm *VM) QuoteAssetToNativeOutput(ctx context.Context, exchange codec.Address, nativeOut uint64) (uint64, error) {
	return vm.Quote(ctx, exchange, AssetToNativeOutput, nativeOut)
}

// Quote prices [amount] against the current reserves of [exchange] in the
// given [direction].
func (vm *VM) Quote(ctx context.Context, exchange codec.Address, direction string, amount uint64) (uint64, error) {
	e, exists, err := vm.GetExchange(ctx, exchange)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, actions.ErrExchangeNotFound
	}
	if e.TotalShares == 0 {
		return 0, actions.ErrNotInitialized
	}
	switch direction {
	case NativeToAssetInput:
		return pricing.PriceGivenInput(amount, e.ReserveNative, e.ReserveAsset)
	case NativeToAssetOutput:
		return pricing.PriceGivenOutput(amount, e.ReserveNative, e.ReserveAsset)
	case AssetToNativeInput:
		return pricing.PriceGivenInput(amount, e.ReserveAsset, e.ReserveNative)
	case AssetToNativeOutput:
		return pricing.PriceGivenOutput(amount, e.ReserveAsset, e.ReserveNative)
	default:
		return 0, ErrUnknownDirection
	}
}

// Results returns up to [limit] indexed results starting at sequence [from],
// as they were encoded when committed.
func (vm *VM) Results(from uint64, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		return nil, nil
	}
	vm.l.Lock()
	end := vm.resultSeq
	vm.l.Unlock()

	results := make([]json.RawMessage, 0, limit)
	for seq := from; seq < end && len(results) < limit; seq++ {
		b, err := storage.GetResult(vm.db, seq)
		if err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, nil
}

// ResultCount returns the number of indexed results.
func (vm *VM) ResultCount() uint64 {
	vm.l.Lock()
	defer vm.l.Unlock()

	return vm.resultSeq
}
