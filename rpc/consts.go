// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

const (
	Name            = "amm"
	JSONRPCEndpoint = "/ammapi"

	// MaxResults bounds a single results page.
	MaxResults = 1_024
)
