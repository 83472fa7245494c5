// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
)

var (
	_ chain.Action = (*NativeToAssetSwapOutput)(nil)
	_ chain.Action = (*AssetToNativeSwapOutput)(nil)
)

// NativeToAssetSwapOutput buys exactly [AssetOut] of the asset, spending at
// most [Value] native currency. Only the required amount is taken from the
// actor; the rest is reported as a refund.
type NativeToAssetSwapOutput struct {
	Exchange codec.Address `json:"exchange"`
	AssetOut uint64        `json:"assetOut"`
	Value    uint64        `json:"value"`
	Deadline int64         `json:"deadline"`
}

func (*NativeToAssetSwapOutput) GetTypeID() uint8 {
	return consts.NativeToAssetSwapOutputID
}

func (s *NativeToAssetSwapOutput) StateKeys(actor codec.Address) state.Keys {
	return nativeToAssetKeys(s.Exchange, actor, actor)
}

func (s *NativeToAssetSwapOutput) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if err := checkDeadline(timestamp, s.Deadline); err != nil {
		return nil, err
	}
	if s.AssetOut == 0 || s.Value == 0 {
		return nil, ErrZeroInput
	}
	p, err := loadLivePool(ctx, r, mu, s.Exchange)
	if err != nil {
		return nil, err
	}
	nativeIn, err := p.nativeToAssetOutput(s.AssetOut)
	if err != nil {
		return nil, err
	}
	if nativeIn > s.Value {
		return nil, fmt.Errorf("%w: requires %d, max %d", ErrExcessiveInput, nativeIn, s.Value)
	}
	if err := p.sellNative(ctx, mu, actor, actor, nativeIn, s.AssetOut); err != nil {
		return nil, err
	}
	emitter.Emit(&Purchase{
		Exchange:  s.Exchange,
		Buyer:     actor,
		NativeIn:  true,
		AmountIn:  nativeIn,
		AmountOut: s.AssetOut,
	})
	return &NativeToAssetResult{
		NativeIn: nativeIn,
		AssetOut: s.AssetOut,
		Refund:   s.Value - nativeIn,
	}, nil
}

// AssetToNativeSwapOutput buys exactly [NativeOut] native currency, selling
// at most [MaxAssetIn] of the asset.
type AssetToNativeSwapOutput struct {
	Exchange   codec.Address `json:"exchange"`
	NativeOut  uint64        `json:"nativeOut"`
	MaxAssetIn uint64        `json:"maxAssetIn"`
	Deadline   int64         `json:"deadline"`
}

func (*AssetToNativeSwapOutput) GetTypeID() uint8 {
	return consts.AssetToNativeSwapOutputID
}

func (s *AssetToNativeSwapOutput) StateKeys(actor codec.Address) state.Keys {
	return assetToNativeKeys(s.Exchange, actor, actor)
}

func (s *AssetToNativeSwapOutput) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if err := checkDeadline(timestamp, s.Deadline); err != nil {
		return nil, err
	}
	if s.NativeOut == 0 || s.MaxAssetIn == 0 {
		return nil, ErrZeroInput
	}
	p, err := loadLivePool(ctx, r, mu, s.Exchange)
	if err != nil {
		return nil, err
	}
	assetIn, err := p.assetToNativeOutput(s.NativeOut)
	if err != nil {
		return nil, err
	}
	if assetIn > s.MaxAssetIn {
		return nil, fmt.Errorf("%w: requires %d, max %d", ErrExcessiveInput, assetIn, s.MaxAssetIn)
	}
	if err := p.sellAsset(ctx, mu, actor, actor, assetIn, s.NativeOut); err != nil {
		return nil, err
	}
	emitter.Emit(&Purchase{
		Exchange:  s.Exchange,
		Buyer:     actor,
		AmountIn:  assetIn,
		AmountOut: s.NativeOut,
	})
	return &AssetToNativeResult{AssetIn: assetIn, NativeOut: s.NativeOut}, nil
}
