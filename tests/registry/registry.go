// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry collects the workloads the e2e suite runs against a live
// environment. Workloads register themselves from init-time var blocks.
package registry

import (
	"fmt"
	"sync"

	"github.com/onsi/ginkgo/v2"

	"github.com/ava-labs/ammvm/tests/fixture"
)

// Func drives [env] and reports failures through [t] or its returned error.
type Func func(t ginkgo.FullGinkgoTInterface, env *fixture.Environment) error

type Workload struct {
	Name   string
	Labels []string
	Run    Func
}

var (
	lock      sync.Mutex
	workloads []Workload
)

// Register adds [w] to the suite. Names must be unique.
func Register(w Workload) bool {
	lock.Lock()
	defer lock.Unlock()

	for _, existing := range workloads {
		if existing.Name == w.Name {
			panic(fmt.Sprintf("workload %q registered twice", w.Name))
		}
	}
	workloads = append(workloads, w)
	return true
}

// Workloads returns the registered workloads in registration order.
func Workloads() []Workload {
	lock.Lock()
	defer lock.Unlock()

	return append([]Workload(nil), workloads...)
}
