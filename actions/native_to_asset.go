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
	_ chain.Action = (*NativeToAssetSwap)(nil)
	_ chain.Action = (*NativeToAssetPayment)(nil)
	_ chain.Action = (*DepositAsSwap)(nil)
)

// NativeToAssetSwap sells exactly [Value] native currency for as much of the
// asset as the pool pays, which must be at least [MinAssetOut].
type NativeToAssetSwap struct {
	Exchange    codec.Address `json:"exchange"`
	Value       uint64        `json:"value"`
	MinAssetOut uint64        `json:"minAssetOut"`
	Deadline    int64         `json:"deadline"`
}

func (*NativeToAssetSwap) GetTypeID() uint8 {
	return consts.NativeToAssetSwapID
}

func (s *NativeToAssetSwap) StateKeys(actor codec.Address) state.Keys {
	return nativeToAssetKeys(s.Exchange, actor, actor)
}

func (s *NativeToAssetSwap) Execute(
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
	assetOut, err := nativeToAsset(ctx, r, mu, actor, actor, s.Exchange, s.Value, s.MinAssetOut, emitter)
	if err != nil {
		return nil, err
	}
	return &NativeToAssetResult{NativeIn: s.Value, AssetOut: assetOut}, nil
}

// NativeToAssetPayment is a [NativeToAssetSwap] that pays the asset to
// [Recipient].
type NativeToAssetPayment struct {
	Exchange    codec.Address `json:"exchange"`
	Value       uint64        `json:"value"`
	MinAssetOut uint64        `json:"minAssetOut"`
	Deadline    int64         `json:"deadline"`
	Recipient   codec.Address `json:"recipient"`
}

func (*NativeToAssetPayment) GetTypeID() uint8 {
	return consts.NativeToAssetPaymentID
}

func (p *NativeToAssetPayment) StateKeys(actor codec.Address) state.Keys {
	return nativeToAssetKeys(p.Exchange, actor, p.Recipient)
}

func (p *NativeToAssetPayment) Execute(
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
	assetOut, err := nativeToAsset(ctx, r, mu, actor, p.Recipient, p.Exchange, p.Value, p.MinAssetOut, emitter)
	if err != nil {
		return nil, err
	}
	return &NativeToAssetResult{NativeIn: p.Value, AssetOut: assetOut}, nil
}

// DepositAsSwap is a plain native transfer to an exchange. It swaps the
// whole deposit for the asset with no deadline.
type DepositAsSwap struct {
	Exchange codec.Address `json:"exchange"`
	Value    uint64        `json:"value"`
}

func (*DepositAsSwap) GetTypeID() uint8 {
	return consts.DepositAsSwapID
}

func (d *DepositAsSwap) StateKeys(actor codec.Address) state.Keys {
	return nativeToAssetKeys(d.Exchange, actor, actor)
}

func (d *DepositAsSwap) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	emitter chain.Emitter,
) (codec.Typed, error) {
	assetOut, err := nativeToAsset(ctx, r, mu, actor, actor, d.Exchange, d.Value, 0, emitter)
	if err != nil {
		return nil, err
	}
	return &NativeToAssetResult{NativeIn: d.Value, AssetOut: assetOut}, nil
}

func nativeToAssetKeys(exchange codec.Address, actor codec.Address, recipient codec.Address) state.Keys {
	k := exchangeKeys(exchange)
	k.Add(string(storage.BalanceKey(actor)), state.All)
	return k.Union(asset.TransferKeys(storage.ExchangeAsset(exchange), exchange, recipient))
}

var _ codec.Typed = (*NativeToAssetResult)(nil)

type NativeToAssetResult struct {
	NativeIn uint64 `json:"nativeIn"`
	AssetOut uint64 `json:"assetOut"`
	// Refund is the part of the attached value that was not spent
	Refund uint64 `json:"refund,omitempty"`
}

func (*NativeToAssetResult) GetTypeID() uint8 {
	return consts.NativeToAssetSwapID
}
