// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsInterval = 10 * time.Second
	namespace       = "ammvm_pebble"

	levelLabel = "level"
	stateLabel = "state"
	unitLabel  = "unit"
)

// metrics are exported under [namespace]. Compactions are split by the level
// they start from, leftover files by whether an iterator still pins them.
type metrics struct {
	stallStart time.Time
	stall      metric.Averager
	reads      metric.Averager

	compactions *prometheus.CounterVec
	compacting  prometheus.Gauge
	tombstones  prometheus.Gauge
	leftovers   *prometheus.GaugeVec
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	stall, err := metric.NewAverager(namespace+"_write_stall", "time writes spent stalled", r)
	if err != nil {
		return nil, nil, err
	}
	reads, err := metric.NewAverager(namespace+"_read_latency", "time spent in db get", r)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		stall: stall,
		reads: reads,
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "compactions started, by source level",
		}, []string{levelLabel}),
		compacting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "compactions in progress",
		}),
		tombstones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tombstones",
			Help:      "approximate number of deletion tombstones",
		}),
		leftovers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unreferenced",
			Help:      "tables and logs the db no longer needs",
		}, []string{stateLabel, unitLabel}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.compactions),
		r.Register(m.compacting),
		r.Register(m.tombstones),
		r.Register(m.leftovers),
	)
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.compacting.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.compacting.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.stall.Observe(float64(time.Since(db.metrics.stallStart)))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.recordMetrics()
		case <-db.closing:
			return
		}
	}
}

// recordMetrics samples pebble's own counters.
func (db *Database) recordMetrics() {
	m := db.db.Metrics()
	db.metrics.tombstones.Set(float64(m.Keys.TombstoneCount))

	set := func(state, unit string, v float64) {
		db.metrics.leftovers.WithLabelValues(state, unit).Set(v)
	}
	set("obsolete_table", "bytes", float64(m.Table.ObsoleteSize))
	set("obsolete_table", "files", float64(m.Table.ObsoleteCount))
	set("zombie_table", "bytes", float64(m.Table.ZombieSize))
	set("zombie_table", "files", float64(m.Table.ZombieCount))
	set("obsolete_wal", "bytes", float64(m.WAL.ObsoletePhysicalSize))
	set("obsolete_wal", "files", float64(m.WAL.ObsoleteFiles))
}
