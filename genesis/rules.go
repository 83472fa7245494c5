// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/ammvm/asset"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
)

var _ chain.Rules = (*Rules)(nil)

// Rules resolve every asset to the ledger kept in engine state.
type Rules struct{}

func NewDefaultRules() *Rules {
	return &Rules{}
}

func (*Rules) FungibleAsset(mu state.Mutable, addr codec.Address) asset.FungibleAsset {
	return asset.NewLedger(mu, addr)
}
