// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/config"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/event"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/pebble"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/trace"
	"github.com/ava-labs/ammvm/vm"
)

// engine holds the flags shared by every command and the resources opened
// from them.
type engine struct {
	dbPath      string
	configPath  string
	genesisPath string
	logLevel    string
	logDir      string

	log      logging.Logger
	vm       *vm.VM
	gatherer prometheus.Gatherers
	closers  []func() error
}

func NewRootCmd() *cobra.Command {
	e := &engine{}
	cmd := &cobra.Command{
		Use:   "amm-cli",
		Short: "Automated market maker engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := cmd.PersistentFlags()
	flags.StringVar(&e.dbPath, "database", "", "pebble directory, in-memory when empty")
	flags.StringVar(&e.configPath, "config", "", "path to the engine config file")
	flags.StringVar(&e.genesisPath, "genesis", "", "path to the genesis file")
	flags.StringVar(&e.logLevel, "log-level", "info", "log level")
	flags.StringVar(&e.logDir, "log-dir", "", "directory of the log files, stderr only when empty")

	cmd.AddCommand(
		newRunCmd(e),
		newServeCmd(e),
		newExchangeCmd(e),
	)
	return cmd
}

// open builds the engine. A non-nil [gen] overrides the --genesis flag.
func (e *engine) open(ctx context.Context, gen *genesis.Genesis) error {
	level, err := logging.ToLevel(e.logLevel)
	if err != nil {
		return err
	}
	logConfig := logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   8, // megabytes
			MaxFiles:  4,
			MaxAge:    7, // days
			Directory: e.logDir,
		},
		DisplayLevel: level,
		LogLevel:     level,
		LogFormat:    logging.Plain,
	}
	if len(e.logDir) == 0 {
		logConfig.LogLevel = logging.Off
		logConfig.Directory = os.TempDir()
	}
	e.log = newLogger(consts.Name, logConfig)
	e.closers = append(e.closers, func() error {
		e.log.Stop()
		return nil
	})

	configBytes, err := readOptional(e.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.New(configBytes)
	if err != nil {
		return err
	}
	if gen == nil {
		genesisBytes, err := readOptional(e.genesisPath)
		if err != nil {
			return err
		}
		gen, err = genesis.Load(genesisBytes)
		if err != nil {
			return err
		}
	}

	tracer, err := trace.New(cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	e.closers = append(e.closers, tracer.Close)

	var db storage.Database
	registry := prometheus.NewRegistry()
	e.gatherer = prometheus.Gatherers{registry}
	if len(e.dbPath) == 0 {
		db = memdb.New()
	} else {
		pdb, dbRegistry, err := pebble.New(e.dbPath, pebble.NewDefaultConfig())
		if err != nil {
			return err
		}
		e.closers = append(e.closers, pdb.Close)
		e.gatherer = append(e.gatherer, dbRegistry)
		db = pdb
	}

	failures := event.Filter(failed, event.SubscriptionFunc[*chain.Result]{
		AcceptF: func(_ context.Context, r *chain.Result) error {
			e.log.Debug("call failed",
				zap.Stringer("actor", r.Actor),
				zap.Uint8("action", r.Action),
				zap.String("error", r.Error),
			)
			return nil
		},
	})
	e.vm, err = vm.New(ctx, cfg, db, gen, e.log, registry, tracer, vm.WithResultSubscriptions(failures))
	if err != nil {
		return err
	}
	e.closers = append(e.closers, e.vm.Close)
	e.log.Info("opened engine",
		zap.String("database", e.dbPath),
		zap.Stringer("version", consts.Version),
	)
	return nil
}

// close releases everything [open] acquired, newest first.
func (e *engine) close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

func failed(r *chain.Result) bool {
	return !r.Success
}

func readOptional(path string) ([]byte, error) {
	if len(path) == 0 {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}
