// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/keys"
	"github.com/ava-labs/ammvm/state"
)

const exchangeLen = codec.AddressLen + consts.Uint64Len*2 + consts.BoolLen

// Exchange is the persisted record of a pool. The native reserve is not
// part of the record: it is the native balance of the exchange address.
type Exchange struct {
	Asset        codec.Address `json:"asset"`
	ReserveAsset uint64        `json:"reserveAsset"`
	TotalShares  uint64        `json:"totalShares"`
	Initialized  bool          `json:"initialized"`
}

// ExchangeAddress deterministically derives the exchange of [asset]. The
// exchange shares the id of its asset so the asset can be recovered with
// [ExchangeAsset].
func ExchangeAddress(asset codec.Address) codec.Address {
	return codec.CreateAddress(consts.ExchangeAddressID, ids.ID(asset[1:]))
}

// ExchangeAsset returns the asset [exchange] was derived from.
func ExchangeAsset(exchange codec.Address) codec.Address {
	return codec.CreateAddress(consts.AssetAddressID, ids.ID(exchange[1:]))
}

// [exchangePrefix] + [exchange]
func ExchangeKey(exchange codec.Address) []byte {
	return keys.New(exchangePrefix, ExchangeChunks, exchange[:])
}

// [sharesPrefix] + [exchange] + [provider]
func SharesKey(exchange codec.Address, provider codec.Address) []byte {
	return keys.New(sharesPrefix, SharesChunks, exchange[:], provider[:])
}

func SetExchange(ctx context.Context, mu state.Mutable, exchange codec.Address, e *Exchange) error {
	v := make([]byte, 0, exchangeLen)
	v = append(v, e.Asset[:]...)
	v = binary.BigEndian.AppendUint64(v, e.ReserveAsset)
	v = binary.BigEndian.AppendUint64(v, e.TotalShares)
	if e.Initialized {
		v = append(v, 1)
	} else {
		v = append(v, 0)
	}
	return mu.Insert(ctx, ExchangeKey(exchange), v)
}

// GetExchange returns the record of [exchange] and whether it exists.
func GetExchange(ctx context.Context, im state.Immutable, exchange codec.Address) (*Exchange, bool, error) {
	v, err := im.GetValue(ctx, ExchangeKey(exchange))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(v) != exchangeLen {
		return nil, false, ErrInvalidRecord
	}
	e := &Exchange{
		Asset:        codec.Address(v[:codec.AddressLen]),
		ReserveAsset: binary.BigEndian.Uint64(v[codec.AddressLen:]),
		TotalShares:  binary.BigEndian.Uint64(v[codec.AddressLen+consts.Uint64Len:]),
		Initialized:  v[exchangeLen-1] == 1,
	}
	return e, true, nil
}

func GetShares(ctx context.Context, im state.Immutable, exchange codec.Address, provider codec.Address) (uint64, error) {
	return getUint64(ctx, im, SharesKey(exchange, provider))
}

func SetShares(ctx context.Context, mu state.Mutable, exchange codec.Address, provider codec.Address, shares uint64) error {
	return setUint64(ctx, mu, SharesKey(exchange, provider), shares)
}
