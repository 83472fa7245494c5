// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrInvalidLimit     = errors.New("invalid limit")
)
