// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrZeroInput           = errors.New("zero input")
	ErrReservesZero        = errors.New("reserves are zero")
	ErrInsufficientReserve = errors.New("insufficient reserve")
	ErrOverflow            = errors.New("overflow")
	ErrExcessiveShares     = errors.New("shares exceed total shares")
)
