// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

type Allocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Genesis is the initial native currency distribution.
type Genesis struct {
	Allocations []*Allocation `json:"allocations"`
}

func New(allocations []*Allocation) *Genesis {
	return &Genesis{Allocations: allocations}
}

func Load(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if len(b) == 0 {
		return g, nil
	}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal genesis: %w", err)
	}
	return g, nil
}

// StateKeys returns the keys [InitializeState] writes.
func (g *Genesis) StateKeys() state.Keys {
	keys := make(state.Keys, len(g.Allocations))
	for _, alloc := range g.Allocations {
		keys.Add(string(storage.BalanceKey(alloc.Address)), state.All)
	}
	return keys
}

// InitializeState credits every allocation and returns the total supply.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) (uint64, error) {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.Allocations {
		var err error
		supply, err = safemath.Add(supply, alloc.Balance)
		if err != nil {
			return 0, err
		}
		if _, err := storage.AddBalance(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return 0, fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return supply, nil
}
