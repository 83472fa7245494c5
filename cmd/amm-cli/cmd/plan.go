// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/genesis"
)

// Plan is a scripted sequence of calls against a fresh engine.
type Plan struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	// Native balances, in whole units, credited to named accounts at genesis.
	Accounts map[string]string `yaml:"accounts" json:"accounts"`
	// Unix seconds deadlines are checked against. Defaults to the wall clock.
	Timestamp int64  `yaml:"timestamp" json:"timestamp"`
	Steps     []Step `yaml:"steps" json:"steps"`
}

type Step struct {
	Description string `yaml:"description" json:"description"`
	// Name of the account executing the step.
	Actor  string            `yaml:"actor" json:"actor"`
	Action string            `yaml:"action" json:"action"`
	Params map[string]string `yaml:"params" json:"params"`
	// When set, the step must fail with an error containing this text.
	ExpectError string `yaml:"expect_error" json:"expectError"`
}

// Response is printed for every executed step.
type Response struct {
	ID          int           `json:"id"`
	Description string        `json:"description,omitempty"`
	Action      string        `json:"action"`
	Success     bool          `json:"success"`
	Output      codec.Typed   `json:"output,omitempty"`
	Events      []codec.Typed `json:"events,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// unmarshalPlan decodes a JSON plan, falling back to YAML.
func unmarshalPlan(b []byte) (*Plan, error) {
	p := &Plan{}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPlanFormat, err)
		}
		return p, nil
	}
	if err := yaml.UnmarshalStrict(b, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlanFormat, err)
	}
	return p, nil
}

func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if len(step.Actor) == 0 {
			return fmt.Errorf("%w %d: missing actor", ErrInvalidStep, i)
		}
		if _, ok := builders[step.Action]; !ok {
			return fmt.Errorf("%w %d: %w %q", ErrInvalidStep, i, ErrUnknownAction, step.Action)
		}
	}
	return nil
}

// Genesis credits every named account of the plan.
func (p *Plan) Genesis() (*genesis.Genesis, error) {
	names := maps.Keys(p.Accounts)
	slices.Sort(names)

	allocations := make([]*genesis.Allocation, 0, len(names))
	for _, name := range names {
		balance, err := parseAmount(p.Accounts[name], consts.NativeDecimals)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %w", ErrInvalidPlan, name, err)
		}
		allocations = append(allocations, &genesis.Allocation{
			Address: accountAddress(name),
			Balance: balance,
		})
	}
	return genesis.New(allocations), nil
}

// accountAddress derives the address of a named account.
func accountAddress(name string) codec.Address {
	return codec.DeriveAddress(consts.AccountAddressID, []byte(name))
}
