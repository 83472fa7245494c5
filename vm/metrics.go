// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ammvm/consts"
)

var actionNames = map[uint8]string{
	consts.LaunchExchangeID:          "launch_exchange",
	consts.InitializeExchangeID:      "initialize_exchange",
	consts.NativeToAssetSwapID:       "native_to_asset_swap",
	consts.NativeToAssetPaymentID:    "native_to_asset_payment",
	consts.AssetToNativeSwapID:       "asset_to_native_swap",
	consts.AssetToNativePaymentID:    "asset_to_native_payment",
	consts.NativeToAssetSwapOutputID: "native_to_asset_swap_output",
	consts.AssetToNativeSwapOutputID: "asset_to_native_swap_output",
	consts.DepositAsSwapID:           "deposit_as_swap",
	consts.AssetToAssetSwapID:        "asset_to_asset_swap",
	consts.AssetToAssetPaymentID:     "asset_to_asset_payment",
	consts.InvestLiquidityID:         "invest_liquidity",
	consts.DivestLiquidityID:         "divest_liquidity",
	consts.CreateAssetID:             "create_asset",
	consts.MintAssetID:               "mint_asset",
	consts.TransferAssetID:           "transfer_asset",
	consts.ApproveAssetID:            "approve_asset",
	consts.TransferNativeID:          "transfer_native",
}

func actionName(id uint8) string {
	if name, ok := actionNames[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

type metrics struct {
	actions         *prometheus.CounterVec
	callsSucceeded  prometheus.Counter
	callsFailed     prometheus.Counter
	batches         prometheus.Counter
	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter
	resultsIndexed  prometheus.Counter
	batchLatency    prometheus.Histogram
}

func newMetrics(namespace string, r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "executed",
			Help:      "number of executed actions by type",
		}, []string{"action"}),
		callsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_succeeded",
			Help:      "number of calls that committed",
		}),
		callsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_failed",
			Help:      "number of calls that were discarded",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches",
			Help:      "number of batches written to disk",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes",
			Help:      "number of state keys written to disk",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_operations",
			Help:      "number of state operations performed by committed calls",
		}),
		resultsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_indexed",
			Help:      "number of results written to the result index",
		}),
		batchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_latency",
			Help:      "time spent executing and committing a batch in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.actions),
		r.Register(m.callsSucceeded),
		r.Register(m.callsFailed),
		r.Register(m.batches),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
		r.Register(m.resultsIndexed),
		r.Register(m.batchLatency),
	)
	return m, errs.Err
}

func (m *metrics) observeBatch(start time.Time, changes int, ops int) {
	m.batches.Inc()
	m.stateChanges.Add(float64(changes))
	m.stateOperations.Add(float64(ops))
	m.batchLatency.Observe(time.Since(start).Seconds())
}
