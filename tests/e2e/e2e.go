// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package e2e

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/tests/fixture"
	"github.com/ava-labs/ammvm/tests/registry"

	ginkgo "github.com/onsi/ginkgo/v2"
)

const fundedBalance = 1_000_000_000_000

// Accounts funded at genesis for every suite.
var Accounts = []string{"alice", "bob", "carol"}

var env *fixture.Environment

var _ = ginkgo.BeforeSuite(func() {
	require := require.New(ginkgo.GinkgoT())
	var err error
	env, err = fixture.NewEnvironment(context.Background(), Accounts, fundedBalance)
	require.NoError(err)
})

var _ = ginkgo.AfterSuite(func() {
	if env != nil {
		require.NoError(ginkgo.GinkgoT(), env.Close())
	}
})

var _ = ginkgo.Describe("[AMM APIs]", func() {
	ginkgo.It("Ping", func() {
		require := require.New(ginkgo.GinkgoT())
		ok, err := env.Client().Ping(context.Background())
		require.NoError(err)
		require.True(ok)
	})

	ginkgo.It("Genesis balances", func() {
		require := require.New(ginkgo.GinkgoT())
		cli := env.Client()
		for _, name := range Accounts {
			balance, err := cli.Balance(context.Background(), fixture.Account(name))
			require.NoError(err)
			require.LessOrEqual(balance, uint64(fundedBalance))
		}
	})
})

var _ = ginkgo.Describe("[AMM Workloads]", func() {
	for _, w := range registry.Workloads() {
		w := w
		ginkgo.It(w.Name, ginkgo.Label(w.Labels...), func() {
			require.NoError(ginkgo.GinkgoT(), w.Run(ginkgo.GinkgoT(), env))
		})
	}
})

// RegisterTest adds a workload to the suite, labelled with [labels].
func RegisterTest(name string, f registry.Func, labels ...string) bool {
	return registry.Register(registry.Workload{Name: name, Labels: labels, Run: f})
}
