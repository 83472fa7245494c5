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
	_ chain.Action = (*AssetToNativeSwap)(nil)
	_ chain.Action = (*AssetToNativePayment)(nil)
)

// AssetToNativeSwap sells exactly [AssetIn] of the asset for at least
// [MinNativeOut] native currency. The actor must have approved the exchange
// to spend [AssetIn].
type AssetToNativeSwap struct {
	Exchange     codec.Address `json:"exchange"`
	AssetIn      uint64        `json:"assetIn"`
	MinNativeOut uint64        `json:"minNativeOut"`
	Deadline     int64         `json:"deadline"`
}

func (*AssetToNativeSwap) GetTypeID() uint8 {
	return consts.AssetToNativeSwapID
}

func (s *AssetToNativeSwap) StateKeys(actor codec.Address) state.Keys {
	return assetToNativeKeys(s.Exchange, actor, actor)
}

func (s *AssetToNativeSwap) Execute(
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
	nativeOut, err := assetToNative(ctx, r, mu, actor, actor, s.Exchange, s.AssetIn, s.MinNativeOut, emitter)
	if err != nil {
		return nil, err
	}
	return &AssetToNativeResult{AssetIn: s.AssetIn, NativeOut: nativeOut}, nil
}

// AssetToNativePayment is an [AssetToNativeSwap] that pays the native
// currency to [Recipient].
type AssetToNativePayment struct {
	Exchange     codec.Address `json:"exchange"`
	AssetIn      uint64        `json:"assetIn"`
	MinNativeOut uint64        `json:"minNativeOut"`
	Deadline     int64         `json:"deadline"`
	Recipient    codec.Address `json:"recipient"`
}

func (*AssetToNativePayment) GetTypeID() uint8 {
	return consts.AssetToNativePaymentID
}

func (p *AssetToNativePayment) StateKeys(actor codec.Address) state.Keys {
	return assetToNativeKeys(p.Exchange, actor, p.Recipient)
}

func (p *AssetToNativePayment) Execute(
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
	nativeOut, err := assetToNative(ctx, r, mu, actor, p.Recipient, p.Exchange, p.AssetIn, p.MinNativeOut, emitter)
	if err != nil {
		return nil, err
	}
	return &AssetToNativeResult{AssetIn: p.AssetIn, NativeOut: nativeOut}, nil
}

func assetToNativeKeys(exchange codec.Address, actor codec.Address, recipient codec.Address) state.Keys {
	k := exchangeKeys(exchange)
	k.Add(string(storage.BalanceKey(recipient)), state.All)
	return k.Union(asset.TransferFromKeys(storage.ExchangeAsset(exchange), exchange, actor, exchange))
}

var _ codec.Typed = (*AssetToNativeResult)(nil)

type AssetToNativeResult struct {
	AssetIn   uint64 `json:"assetIn"`
	NativeOut uint64 `json:"nativeOut"`
}

func (*AssetToNativeResult) GetTypeID() uint8 {
	return consts.AssetToNativeSwapID
}
