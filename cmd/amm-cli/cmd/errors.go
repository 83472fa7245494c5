// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan       = errors.New("invalid plan")
	ErrInvalidStep       = errors.New("invalid step")
	ErrUnknownAction     = errors.New("unknown action")
	ErrMissingParam      = errors.New("missing param")
	ErrInvalidParam      = errors.New("invalid param")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrUnexpectedResult  = errors.New("unexpected result")
	ErrExchangeNotFound  = errors.New("exchange not found")
	ErrInvalidPlanFormat = errors.New("plan is neither yaml nor json")
)
