// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a process wide meter registry. It is a no-op until
// InitializePrometheusMetrics is called, so packages can declare meters freely.
package metrics

import (
	"net/http"
	"sync"
)

var (
	lock    sync.RWMutex
	metrics Metrics = noopMetrics{}
)

// Metrics creates or returns named meters.
type Metrics interface {
	Counter(name string) CountMeter
	CounterVec(name string, labels []string) CountVecMeter
	Gauge(name string) GaugeMeter
	Histogram(name string, buckets []int64) HistogramMeter
	Handler() http.Handler
}

func current() Metrics {
	lock.RLock()
	defer lock.RUnlock()
	return metrics
}

// HTTPHandler returns the http handler for retrieving metrics, nil when disabled.
func HTTPHandler() http.Handler {
	return current().Handler()
}

// BucketMillis covers durations from one millisecond to ten seconds.
var BucketMillis = []int64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000}

type CountMeter interface {
	Add(int64)
}

type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

type HistogramMeter interface {
	Observe(int64)
}

func Counter(name string) CountMeter { return current().Counter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return current().CounterVec(name, labels)
}

func Gauge(name string) GaugeMeter { return current().Gauge(name) }

func Histogram(name string, buckets []int64) HistogramMeter {
	return current().Histogram(name, buckets)
}

// LazyLoad defers creating a meter to its first use, after the backend is chosen.
func LazyLoad[T any](f func() T) func() T {
	var (
		result T
		once   sync.Once
	)
	return func() T {
		once.Do(func() {
			result = f()
		})
		return result
	}
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}

type noopMetrics struct{}

func (noopMetrics) Counter(string) CountMeter                 { return noopMeter{} }
func (noopMetrics) CounterVec(string, []string) CountVecMeter { return noopMeter{} }
func (noopMetrics) Gauge(string) GaugeMeter                   { return noopMeter{} }
func (noopMetrics) Histogram(string, []int64) HistogramMeter  { return noopMeter{} }
func (noopMetrics) Handler() http.Handler                     { return nil }

type noopMeter struct{}

func (noopMeter) Add(int64)                             {}
func (noopMeter) Set(int64)                             {}
func (noopMeter) Observe(int64)                         {}
func (noopMeter) AddWithLabel(int64, map[string]string) {}
