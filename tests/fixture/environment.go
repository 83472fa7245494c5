// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/config"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/pebble"
	"github.com/ava-labs/ammvm/rpc"
	"github.com/ava-labs/ammvm/server"
	"github.com/ava-labs/ammvm/vm"
)

const (
	apiBase         = "ext"
	shutdownTimeout = 5 * time.Second
)

// Environment is an engine persisted to a temporary pebble database and
// served over HTTP on a loopback port.
type Environment struct {
	dir    string
	db     *pebble.Database
	vm     *vm.VM
	server server.Server
	uri    string
	done   chan error
}

// NewEnvironment funds every account in [accounts] with [balance] and starts
// serving the API.
func NewEnvironment(ctx context.Context, accounts []string, balance uint64) (*Environment, error) {
	dir, err := os.MkdirTemp("", consts.Name+"-e2e")
	if err != nil {
		return nil, err
	}
	e := &Environment{dir: dir, done: make(chan error, 1)}
	if err := e.start(ctx, accounts, balance); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Environment) start(ctx context.Context, accounts []string, balance uint64) error {
	allocations := make([]*genesis.Allocation, 0, len(accounts))
	for _, name := range accounts {
		allocations = append(allocations, &genesis.Allocation{Address: Account(name), Balance: balance})
	}
	cfg, err := config.New([]byte(`{"parallelism":4}`))
	if err != nil {
		return err
	}
	e.db, _, err = pebble.New(filepath.Join(e.dir, "db"), pebble.NewDefaultConfig())
	if err != nil {
		return err
	}
	e.vm, err = vm.New(ctx, cfg, e.db, genesis.New(allocations), logging.NoLog{}, prometheus.NewRegistry(), trace.Noop)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	serverConfig := server.NewDefaultConfig()
	serverConfig.ShutdownTimeout = shutdownTimeout
	e.server = server.New(logging.NoLog{}, listener, serverConfig)
	handler, err := rpc.NewJSONRPCHandler(e.vm)
	if err != nil {
		return err
	}
	if err := e.server.AddRoute(handler, apiBase, rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	go func() {
		e.done <- e.server.Dispatch()
	}()
	e.uri = fmt.Sprintf("http://%s/%s", e.server.Addr(), apiBase)
	return nil
}

// Account derives the address of a named account.
func Account(name string) codec.Address {
	return codec.DeriveAddress(consts.AccountAddressID, []byte(name))
}

func (e *Environment) URI() string { return e.uri }

func (e *Environment) VM() *vm.VM { return e.vm }

func (e *Environment) Client() *rpc.JSONRPCClient {
	return rpc.NewJSONRPCClient(e.uri)
}

// Close stops the server, closes the engine and removes its directory.
func (e *Environment) Close() error {
	var errs []error
	if e.server != nil {
		errs = append(errs, e.server.Shutdown())
		if err := <-e.done; !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}
	if e.vm != nil {
		errs = append(errs, e.vm.Close())
	}
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	errs = append(errs, os.RemoveAll(e.dir))
	return errors.Join(errs...)
}
