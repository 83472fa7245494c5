// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ammvm/rpc"
	"github.com/ava-labs/ammvm/server"
)

const (
	apiBase     = "ext"
	metricsBase = "metrics"
)

func newServeCmd(e *engine) *cobra.Command {
	var (
		addr   string
		config = server.NewDefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API and metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := e.open(ctx, nil); err != nil {
				return err
			}
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			s := server.New(e.log, listener, config)
			handler, err := rpc.NewJSONRPCHandler(e.vm)
			if err != nil {
				return err
			}
			if err := s.AddRoute(handler, apiBase, rpc.JSONRPCEndpoint); err != nil {
				return err
			}
			metricsHandler := promhttp.HandlerFor(e.gatherer, promhttp.HandlerOpts{})
			if err := s.AddRoute(metricsHandler, metricsBase, ""); err != nil {
				return err
			}
			endpoints, err := s.Endpoints(apiBase)
			if err != nil {
				return err
			}
			e.log.Info("query API ready", zap.Strings("endpoints", endpoints))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := s.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				e.log.Info("shutting down API server")
				return s.Shutdown()
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9650", "address the API listens on")
	cmd.Flags().StringSliceVar(&config.AllowedOrigins, "allowed-origins", config.AllowedOrigins, "origins allowed by CORS")
	cmd.Flags().StringSliceVar(&config.AllowedHosts, "allowed-hosts", config.AllowedHosts, "hostnames accepted in the Host header")
	cmd.Flags().DurationVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "time in-flight requests get to complete")
	return cmd
}
