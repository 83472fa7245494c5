// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var _ chain.Action = (*TransferNative)(nil)

type TransferNative struct {
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

func (*TransferNative) GetTypeID() uint8 {
	return consts.TransferNativeID
}

func (t *TransferNative) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.BalanceKey(actor)): state.Read | state.Write,
		string(storage.BalanceKey(t.To)):  state.All,
	}
}

func (t *TransferNative) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ chain.Emitter,
) (codec.Typed, error) {
	if t.Value == 0 {
		return nil, ErrValueZero
	}
	// Native sent to an exchange would silently join its reserve. Swaps go
	// through DepositAsSwap instead.
	if t.To.Empty() || t.To.TypeID() == consts.ExchangeAddressID {
		return nil, ErrInvalidRecipient
	}
	if err := transferNative(ctx, mu, actor, t.To, t.Value); err != nil {
		return nil, err
	}
	return nil, nil
}
