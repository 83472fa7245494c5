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
	_ chain.Action = (*TransferAsset)(nil)
	_ chain.Action = (*ApproveAsset)(nil)
)

type TransferAsset struct {
	Asset codec.Address `json:"asset"`
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

func (*TransferAsset) GetTypeID() uint8 {
	return consts.TransferAssetID
}

func (t *TransferAsset) StateKeys(actor codec.Address) state.Keys {
	return asset.TransferKeys(t.Asset, actor, t.To)
}

func (t *TransferAsset) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ chain.Emitter,
) (codec.Typed, error) {
	if t.Value == 0 {
		return nil, ErrValueZero
	}
	if t.To.Empty() {
		return nil, ErrInvalidRecipient
	}
	ok, err := r.FungibleAsset(mu, t.Asset).Transfer(ctx, actor, t.To, t.Value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientAssetBalance
	}
	return nil, nil
}

// ApproveAsset sets the amount of [Asset] [Spender] may move on behalf of
// the actor. It replaces any previous allowance.
type ApproveAsset struct {
	Asset   codec.Address `json:"asset"`
	Spender codec.Address `json:"spender"`
	Value   uint64        `json:"value"`
}

func (*ApproveAsset) GetTypeID() uint8 {
	return consts.ApproveAssetID
}

func (a *ApproveAsset) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.AllowanceKey(a.Asset, actor, a.Spender)): state.All,
	}
}

func (a *ApproveAsset) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ chain.Emitter,
) (codec.Typed, error) {
	if a.Spender.Empty() {
		return nil, ErrInvalidRecipient
	}
	ok, err := r.FungibleAsset(mu, a.Asset).Approve(ctx, actor, a.Spender, a.Value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssetTransferFailed
	}
	return nil, nil
}
