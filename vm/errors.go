// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrClosed           = errors.New("vm closed")
	ErrBatchTooLarge    = errors.New("batch too large")
	ErrEmptyBatch       = errors.New("empty batch")
	ErrInvalidKeyValue  = errors.New("invalid key or value")
	ErrMissingAction    = errors.New("missing action")
	ErrUnknownDirection = errors.New("unknown quote direction")
)
