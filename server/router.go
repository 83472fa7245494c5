// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/mux"
)

var errUnknownBaseURL = errors.New("unknown base url")

type router struct {
	lock   sync.RWMutex
	router *mux.Router

	routes map[string]set.Set[string] // base url -> endpoints
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]set.Set[string]),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRouter(base, endpoint string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoints := r.routes[base]
	if endpoints.Contains(endpoint) {
		return fmt.Errorf("failed to create endpoint as %s already exists", base+endpoint)
	}
	endpoints.Add(endpoint)
	r.routes[base] = endpoints
	r.router.Handle(base+endpoint, handler)
	return nil
}

// Endpoints returns the endpoints registered under [base].
func (r *router) Endpoints(base string) ([]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	endpoints, ok := r.routes[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownBaseURL, base)
	}
	return endpoints.List(), nil
}
