// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	return keys.New(balancePrefix, BalanceChunks, addr[:])
}

// GetBalance returns the native balance of [addr]. Missing balances are 0.
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	return getUint64(ctx, im, BalanceKey(addr))
}

func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, balance uint64) error {
	return setUint64(ctx, mu, BalanceKey(addr), balance)
}

func AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, addr, nbal)
}

func SubBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, addr, nbal)
}

// TransferBalance moves [amount] of native currency from [from] to [to].
func TransferBalance(ctx context.Context, mu state.Mutable, from, to codec.Address, amount uint64) error {
	if _, err := SubBalance(ctx, mu, from, amount); err != nil {
		return err
	}
	_, err := AddBalance(ctx, mu, to, amount)
	return err
}

func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, ErrInvalidRecord
	}
	return binary.BigEndian.Uint64(v), nil
}

func setUint64(ctx context.Context, mu state.Mutable, key []byte, value uint64) error {
	v := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(v, value)
	return mu.Insert(ctx, key, v)
}
