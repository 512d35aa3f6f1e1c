// Package monitoring holds the process-wide Prometheus registry. Init builds a
// fresh registry; Reset discards it so tests start from zero.
package monitoring

import (
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	requestErrors    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	checkIns         *prometheus.CounterVec
	consistencyWeeks prometheus.Counter
	pointsAwarded    *prometheus.CounterVec
	pointsDeducted   *prometheus.CounterVec
	bookingConflicts *prometheus.CounterVec
}

var (
	mu      sync.RWMutex
	current *Metrics
)

func newMetrics(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_http_errors_total",
			Help: "HTTP responses with status >= 400 by route and status.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gym_http_request_duration_seconds",
			Help:    "Request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_checkins_total",
			Help: "Recorded gym check-ins by type.",
		}, []string{"type"}),
		consistencyWeeks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gym_consistency_weeks_awarded_total",
			Help: "Consistency bonuses paid.",
		}),
		pointsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_loyalty_points_awarded_total",
			Help: "Loyalty points credited by source.",
		}, []string{"source"}),
		pointsDeducted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_loyalty_points_deducted_total",
			Help: "Loyalty points debited by source.",
		}, []string{"source"}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_booking_conflicts_total",
			Help: "Bookings rejected because the slot was taken.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.requests, m.requestErrors, m.requestDuration, m.checkIns,
		m.consistencyWeeks, m.pointsAwarded, m.pointsDeducted, m.bookingConflicts)
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return m
}

// Init replaces the process registry with a fresh one including Go runtime
// collectors and returns it.
func Init() *Metrics {
	m := newMetrics(true)
	mu.Lock()
	current = m
	mu.Unlock()
	return m
}

// Reset swaps in an empty registry without runtime collectors.
func Reset() *Metrics {
	m := newMetrics(false)
	mu.Lock()
	current = m
	mu.Unlock()
	return m
}

// Get returns the process registry, initializing it on first use.
func Get() *Metrics {
	mu.RLock()
	m := current
	mu.RUnlock()
	if m != nil {
		return m
	}
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = newMetrics(true)
	}
	return current
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	m.requests.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
	if status >= 400 {
		m.requestErrors.WithLabelValues(route, code).Inc()
	}
}

func (m *Metrics) CheckInRecorded(checkInType string) {
	m.checkIns.WithLabelValues(checkInType).Inc()
}

func (m *Metrics) ConsistencyAwarded() {
	m.consistencyWeeks.Inc()
}

func (m *Metrics) PointsAwarded(source string, points int) {
	m.pointsAwarded.WithLabelValues(source).Add(float64(points))
}

func (m *Metrics) PointsDeducted(source string, points int) {
	m.pointsDeducted.WithLabelValues(source).Add(float64(points))
}

func (m *Metrics) BookingConflict(kind string) {
	m.bookingConflicts.WithLabelValues(kind).Inc()
}

// CacheStats reports hits, misses and current size of an in-process cache.
type CacheStats func() (hits int64, misses int64, size int)

// RegisterCache exposes a cache's counters as gym_<name>_cache_* series.
func (m *Metrics) RegisterCache(name string, stats CacheStats) error {
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "gym_" + name + "_cache_hits_total",
		Help: "Cache hits.",
	}, func() float64 { h, _, _ := stats(); return float64(h) })
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "gym_" + name + "_cache_misses_total",
		Help: "Cache misses.",
	}, func() float64 { _, mi, _ := stats(); return float64(mi) })
	size := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gym_" + name + "_cache_items",
		Help: "Items currently cached.",
	}, func() float64 { _, _, n := stats(); return float64(n) })
	for _, c := range []prometheus.Collector{hits, misses, size} {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ErrorCount is one row of the error summary.
type ErrorCount struct {
	Route  string `json:"route"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ErrorSummary gathers the error counter, highest counts first.
func (m *Metrics) ErrorSummary() ([]ErrorCount, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := []ErrorCount{}
	for _, fam := range families {
		if fam.GetName() != "gym_http_errors_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			out = append(out, ErrorCount{
				Route:  labelValue(metric, "route"),
				Status: labelValue(metric, "status"),
				Count:  int64(metric.GetCounter().GetValue()),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Route < out[j].Route
	})
	return out, nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
