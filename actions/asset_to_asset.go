// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var (
	_ chain.Action = (*AssetToAssetSwap)(nil)
	_ chain.Action = (*AssetToAssetPayment)(nil)
)

// AssetToAssetSwap sells [AssetIn] of the asset of [Exchange] for
// [DestinationAsset], routing through native currency. The native currency
// bought on [Exchange] never leaves the custody of the two exchanges.
type AssetToAssetSwap struct {
	Exchange         codec.Address `json:"exchange"`
	AssetIn          uint64        `json:"assetIn"`
	MinAssetOut      uint64        `json:"minAssetOut"`
	MinNativeBought  uint64        `json:"minNativeBought"`
	Deadline         int64         `json:"deadline"`
	DestinationAsset codec.Address `json:"destinationAsset"`
}

func (*AssetToAssetSwap) GetTypeID() uint8 {
	return consts.AssetToAssetSwapID
}

func (s *AssetToAssetSwap) StateKeys(actor codec.Address) state.Keys {
	return assetToAssetKeys(s.Exchange, s.DestinationAsset, actor, actor)
}

func (s *AssetToAssetSwap) Execute(
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
	return assetToAsset(ctx, r, mu, actor, actor, &chainedSwap{
		source:          s.Exchange,
		destination:     s.DestinationAsset,
		assetIn:         s.AssetIn,
		minAssetOut:     s.MinAssetOut,
		minNativeBought: s.MinNativeBought,
	}, emitter)
}

// AssetToAssetPayment is an [AssetToAssetSwap] that pays the destination
// asset to [Recipient].
type AssetToAssetPayment struct {
	Exchange         codec.Address `json:"exchange"`
	AssetIn          uint64        `json:"assetIn"`
	MinAssetOut      uint64        `json:"minAssetOut"`
	MinNativeBought  uint64        `json:"minNativeBought"`
	Deadline         int64         `json:"deadline"`
	DestinationAsset codec.Address `json:"destinationAsset"`
	Recipient        codec.Address `json:"recipient"`
}

func (*AssetToAssetPayment) GetTypeID() uint8 {
	return consts.AssetToAssetPaymentID
}

func (p *AssetToAssetPayment) StateKeys(actor codec.Address) state.Keys {
	return assetToAssetKeys(p.Exchange, p.DestinationAsset, actor, p.Recipient)
}

func (p *AssetToAssetPayment) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if err := checkDeadline(timestamp, p.Deadline); err != nil {
		return nil, err
	}
	if p.Recipient.Empty() {
		return nil, ErrInvalidRecipient
	}
	return assetToAsset(ctx, r, mu, actor, p.Recipient, &chainedSwap{
		source:          p.Exchange,
		destination:     p.DestinationAsset,
		assetIn:         p.AssetIn,
		minAssetOut:     p.MinAssetOut,
		minNativeBought: p.MinNativeBought,
	}, emitter)
}

type chainedSwap struct {
	source          codec.Address
	destination     codec.Address
	assetIn         uint64
	minAssetOut     uint64
	minNativeBought uint64
}

func assetToAsset(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	actor codec.Address,
	recipient codec.Address,
	s *chainedSwap,
	emitter chain.Emitter,
) (codec.Typed, error) {
	if s.destination.Empty() {
		return nil, ErrInvalidPurchasedAsset
	}
	if s.assetIn == 0 {
		return nil, ErrZeroInput
	}
	destination, err := storage.GetExchangeForAsset(ctx, mu, s.destination)
	if err != nil {
		return nil, err
	}
	if destination.Empty() || destination == s.source {
		return nil, ErrInvalidExchangeAddress
	}
	src, err := loadLivePool(ctx, r, mu, s.source)
	if err != nil {
		return nil, err
	}
	dst, err := loadLivePool(ctx, r, mu, destination)
	if err != nil {
		return nil, err
	}

	// Leg 1: the native currency bought stays with the source exchange
	nativeBought, err := src.assetToNativeInput(s.assetIn)
	if err != nil {
		return nil, err
	}
	if err := checkMinimum(nativeBought, s.minNativeBought); err != nil {
		return nil, err
	}
	if err := src.sellAsset(ctx, mu, actor, src.address, s.assetIn, nativeBought); err != nil {
		return nil, err
	}

	// Leg 2: the source exchange pays for the destination asset
	assetOut, err := dst.nativeToAssetInput(nativeBought)
	if err != nil {
		return nil, err
	}
	if err := checkMinimum(assetOut, s.minAssetOut); err != nil {
		return nil, err
	}
	if err := dst.sellNative(ctx, mu, src.address, recipient, nativeBought, assetOut); err != nil {
		return nil, err
	}

	emitter.Emit(&Purchase{
		Exchange:  src.address,
		Buyer:     actor,
		AmountIn:  s.assetIn,
		AmountOut: nativeBought,
	})
	emitter.Emit(&Purchase{
		Exchange:  dst.address,
		Buyer:     src.address,
		NativeIn:  true,
		AmountIn:  nativeBought,
		AmountOut: assetOut,
	})
	return &AssetToAssetResult{
		AssetIn:      s.assetIn,
		NativeBought: nativeBought,
		AssetOut:     assetOut,
	}, nil
}

// assetToAssetKeys declares both legs. The destination exchange is derived
// from [destinationAsset], which is the exchange the factory registers for it.
func assetToAssetKeys(
	source codec.Address,
	destinationAsset codec.Address,
	actor codec.Address,
	recipient codec.Address,
) state.Keys {
	destination := storage.ExchangeAddress(destinationAsset)
	k := exchangeKeys(source)
	k.Union(exchangeKeys(destination))
	k.Add(string(storage.AssetToExchangeKey(destinationAsset)), state.Read)
	k.Union(asset.TransferFromKeys(storage.ExchangeAsset(source), source, actor, source))
	return k.Union(asset.TransferKeys(destinationAsset, destination, recipient))
}

var _ codec.Typed = (*AssetToAssetResult)(nil)

type AssetToAssetResult struct {
	AssetIn      uint64 `json:"assetIn"`
	NativeBought uint64 `json:"nativeBought"`
	AssetOut     uint64 `json:"assetOut"`
}

func (*AssetToAssetResult) GetTypeID() uint8 {
	return consts.AssetToAssetSwapID
}
