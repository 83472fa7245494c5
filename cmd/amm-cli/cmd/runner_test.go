// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/config"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/vm"
)

const unit = 1_000_000_000

// decodedResponse mirrors [Response] with the typed output left as JSON.
type decodedResponse struct {
	ID      int            `json:"id"`
	Action  string         `json:"action"`
	Success bool           `json:"success"`
	Output  map[string]any `json:"output"`
	Error   string         `json:"error"`
}

func newTestRunner(t *testing.T, plan *Plan) (*runner, *bytes.Buffer) {
	require := require.New(t)
	cfg, err := config.New(nil)
	require.NoError(err)
	gen, err := plan.Genesis()
	require.NoError(err)
	v, err := vm.New(context.Background(), cfg, memdb.New(), gen, logging.NoLog{}, prometheus.NewRegistry(), trace.Noop)
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(v.Close())
	})
	out := &bytes.Buffer{}
	return newRunner(v, logging.NoLog{}, out), out
}

func decodeResponses(t *testing.T, out *bytes.Buffer) []decodedResponse {
	var responses []decodedResponse
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var resp decodedResponse
		dec := json.NewDecoder(bytes.NewReader(scanner.Bytes()))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	return responses
}

func TestRunnerLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	plan, err := unmarshalPlan([]byte(lifecyclePlan))
	require.NoError(err)
	r, out := newTestRunner(t, plan)
	require.NoError(r.Run(ctx, plan))

	responses := decodeResponses(t, out)
	require.Len(responses, len(plan.Steps))
	for i, resp := range responses {
		require.Equal(i, resp.ID)
		require.Equal(plan.Steps[i].Action, resp.Action)
		require.Equal(len(plan.Steps[i].ExpectError) == 0, resp.Success)
	}
	require.Equal(json.Number("332665999"), responses[5].Output["assetOut"])
	require.Contains(responses[7].Error, "slippage exceeded")
	require.Equal(json.Number("1500000000"), responses[9].Output["nativeOut"])
	require.Equal(json.Number("667334001"), responses[9].Output["assetOut"])

	lc := r.assets["LC"]
	alice, bob := accountAddress("alice"), accountAddress("bob")
	balance, err := r.vm.NativeBalance(ctx, bob)
	require.NoError(err)
	require.Equal(uint64(50*unit-unit/2+unit), balance)
	balance, err = r.vm.AssetBalance(ctx, lc, bob)
	require.NoError(err)
	require.Equal(uint64(332_665_999), balance)
	balance, err = r.vm.AssetBalance(ctx, lc, alice)
	require.NoError(err)
	require.Equal(uint64(10*unit-unit+667_334_001), balance)

	exchange, exists, err := r.vm.GetExchange(ctx, storage.ExchangeAddress(lc))
	require.NoError(err)
	require.True(exists)
	require.Zero(exchange.TotalShares)
	require.Zero(exchange.ReserveNative)
	require.Zero(exchange.ReserveAsset)
}

func TestRunnerStepErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr error
	}{
		{
			name:    "unknown asset",
			step:    Step{Actor: "alice", Action: "launch_exchange", Params: map[string]string{"asset": "XX"}},
			wantErr: ErrUnknownAsset,
		},
		{
			name:    "missing param",
			step:    Step{Actor: "alice", Action: "transfer_native", Params: map[string]string{"to": "bob"}},
			wantErr: ErrMissingParam,
		},
		{
			name:    "invalid amount",
			step:    Step{Actor: "alice", Action: "transfer_native", Params: map[string]string{"to": "bob", "amount": "max"}},
			wantErr: ErrInvalidParam,
		},
		{
			name:    "unexpected failure",
			step:    Step{Actor: "alice", Action: "transfer_native", Params: map[string]string{"to": "bob", "amount": "2"}},
			wantErr: ErrUnexpectedResult,
		},
		{
			name: "unexpected success",
			step: Step{
				Actor:       "alice",
				Action:      "transfer_native",
				Params:      map[string]string{"to": "bob", "amount": "0.5"},
				ExpectError: "insufficient",
			},
			wantErr: ErrUnexpectedResult,
		},
		{
			name: "wrong failure",
			step: Step{
				Actor:       "alice",
				Action:      "transfer_native",
				Params:      map[string]string{"to": "bob", "amount": "2"},
				ExpectError: "deadline expired",
			},
			wantErr: ErrUnexpectedResult,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{
				Accounts: map[string]string{"alice": "1"},
				Steps:    []Step{tt.step},
			}
			r, _ := newTestRunner(t, plan)
			require.ErrorIs(t, r.Run(context.Background(), plan), tt.wantErr)
		})
	}
}

func TestRunCommand(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(os.WriteFile(path, []byte(lifecyclePlan), 0o600))

	out := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"run", path, "--log-level", "error"})
	require.NoError(cmd.ExecuteContext(context.Background()))
	require.Len(decodeResponses(t, out), 10)

	// a pebble database keeps the state between invocations
	dbPath := filepath.Join(t.TempDir(), "db")
	cmd = NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", path, "--database", dbPath, "--log-level", "error"})
	require.NoError(cmd.ExecuteContext(context.Background()))

	asset := storage.AssetAddress([]byte("LuigiCoin"), []byte("LC"), nil)
	out.Reset()
	cmd = NewRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"exchange", asset.String(), "--database", dbPath, "--log-level", "error"})
	require.NoError(cmd.ExecuteContext(context.Background()))
	require.Contains(out.String(), "total shares:  0")
	require.Contains(out.String(), "(LC)")
}
