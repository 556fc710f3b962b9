// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/valpool/log"
)

const namespace = "valpool"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the process to a prometheus backed registry.
// Calling it again keeps the existing registry.
func InitializePrometheusMetrics() {
	lock.Lock()
	defer lock.Unlock()
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

// Gatherer exposes the prometheus registry, nil when metrics are disabled.
func Gatherer() prometheus.Gatherer {
	if p, ok := current().(*prometheusMetrics); ok {
		return p.registry
	}
	return nil
}

type prometheusMetrics struct {
	registry *prometheus.Registry

	lock   sync.Mutex
	meters map[string]any
}

func newPrometheusMetrics() *prometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &prometheusMetrics{
		registry: registry,
		meters:   make(map[string]any),
	}
}

// getOrCreate memoizes meters by name so repeated lookups share one collector.
func getOrCreate[T any](p *prometheusMetrics, name string, create func() (prometheus.Collector, T)) T {
	p.lock.Lock()
	defer p.lock.Unlock()

	if m, ok := p.meters[name]; ok {
		if typed, ok := m.(T); ok {
			return typed
		}
		logger.Warn("metric registered with another type", "name", name)
	}
	collector, meter := create()
	if err := p.registry.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", name, "error", err)
	}
	p.meters[name] = meter
	return meter
}

func floatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return prometheus.DefBuckets
	}
	out := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, float64(b))
	}
	return out
}

func (p *prometheusMetrics) Counter(name string) CountMeter {
	return getOrCreate(p, name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, promCounter{c}
	})
}

func (p *prometheusMetrics) CounterVec(name string, labels []string) CountVecMeter {
	return getOrCreate(p, name, func() (prometheus.Collector, CountVecMeter) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, promCounterVec{c}
	})
}

func (p *prometheusMetrics) Gauge(name string) GaugeMeter {
	return getOrCreate(p, name, func() (prometheus.Collector, GaugeMeter) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return g, promGauge{g}
	})
}

func (p *prometheusMetrics) Histogram(name string, buckets []int64) HistogramMeter {
	return getOrCreate(p, name, func() (prometheus.Collector, HistogramMeter) {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
		return h, promHistogram{h}
	})
}

func (p *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

type promCounter struct{ c prometheus.Counter }

func (m promCounter) Add(i int64) { m.c.Add(float64(i)) }

type promCounterVec struct{ c *prometheus.CounterVec }

func (m promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	m.c.With(labels).Add(float64(i))
}

type promGauge struct{ g prometheus.Gauge }

func (m promGauge) Add(i int64) { m.g.Add(float64(i)) }
func (m promGauge) Set(i int64) { m.g.Set(float64(i)) }

type promHistogram struct{ h prometheus.Histogram }

func (m promHistogram) Observe(i int64) { m.h.Observe(float64(i)) }
