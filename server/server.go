// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var _ Server = (*server)(nil)

type PathAdder interface {
	// AddRoute registers [handler] at "<baseURL>/<base><endpoint>".
	AddRoute(handler http.Handler, base, endpoint string) error
}

// Server maintains the HTTP router
type Server interface {
	PathAdder
	// Addr is the address the server accepts connections on
	Addr() net.Addr
	// Endpoints lists the endpoints registered under [base]
	Endpoints(base string) ([]string, error)
	// Dispatch serves until [Shutdown] is called
	Dispatch() error
	Shutdown() error
}

type Config struct {
	BaseURL           string        `json:"baseURL"`
	AllowedOrigins    []string      `json:"allowedOrigins"`
	AllowedHosts      []string      `json:"allowedHosts"`
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`
}

// NewDefaultConfig accepts any origin and only local hostnames.
func NewDefaultConfig() Config {
	return Config{
		AllowedOrigins:    []string{wildcard},
		AllowedHosts:      []string{"localhost"},
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

type server struct {
	log    logging.Logger
	config Config

	// Maps endpoints to handlers
	router *router

	srv      *http.Server
	listener net.Listener
}

// New returns a Server accepting connections from [listener]. Requests pass
// the host filter, then CORS, and responses are gzipped when the client
// accepts it.
func New(log logging.Logger, listener net.Listener, config Config) Server {
	router := newRouter()
	var handler http.Handler = filterInvalidHosts(router, config.AllowedHosts)
	handler = cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(handler)
	handler = gziphandler.GzipHandler(handler)

	log.Info("API created",
		zap.Strings("allowedOrigins", config.AllowedOrigins),
		zap.Strings("allowedHosts", config.AllowedHosts),
	)
	return &server{
		log:    log,
		config: config,
		router: router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		listener: listener,
	}
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Dispatch() error {
	s.log.Info("API server listening",
		zap.Stringer("address", s.listener.Addr()),
	)
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", s.config.BaseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

func (s *server) Endpoints(base string) ([]string, error) {
	return s.router.Endpoints(fmt.Sprintf("%s/%s", s.config.BaseURL, base))
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)

	// Connections that outlived the timeout are dropped
	_ = s.srv.Close()
	return err
}
