// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
)

// NewRandomAddress returns a random account address.
func NewRandomAddress() codec.Address {
	return codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())
}
