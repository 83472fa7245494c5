// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
)

var (
	_ codec.Typed = (*ExchangeLaunched)(nil)
	_ codec.Typed = (*Purchase)(nil)
	_ codec.Typed = (*Investment)(nil)
	_ codec.Typed = (*Divestment)(nil)
)

type ExchangeLaunched struct {
	Asset    codec.Address `json:"asset"`
	Exchange codec.Address `json:"exchange"`
}

func (*ExchangeLaunched) GetTypeID() uint8 {
	return consts.ExchangeLaunchedID
}

// Purchase is emitted for every swap leg. NativeIn is true when native
// currency was sold for the asset.
type Purchase struct {
	Exchange  codec.Address `json:"exchange"`
	Buyer     codec.Address `json:"buyer"`
	NativeIn  bool          `json:"nativeIn"`
	AmountIn  uint64        `json:"amountIn"`
	AmountOut uint64        `json:"amountOut"`
}

func (*Purchase) GetTypeID() uint8 {
	return consts.PurchaseID
}

type Investment struct {
	Exchange        codec.Address `json:"exchange"`
	Provider        codec.Address `json:"provider"`
	SharesPurchased uint64        `json:"sharesPurchased"`
}

func (*Investment) GetTypeID() uint8 {
	return consts.InvestmentID
}

type Divestment struct {
	Exchange     codec.Address `json:"exchange"`
	Provider     codec.Address `json:"provider"`
	SharesBurned uint64        `json:"sharesBurned"`
}

func (*Divestment) GetTypeID() uint8 {
	return consts.DivestmentID
}
