// Package metrics provides Prometheus metrics for the launchpad backend.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scf_launchpad"

// Metrics holds all Prometheus collectors of the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP server
	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// Outbound calls (Horizon, Soroban RPC, Pinata, CoinGecko)
	outboundRequests *prometheus.CounterVec
	outboundDuration *prometheus.HistogramVec
	outboundInFlight *prometheus.GaugeVec

	// Domain
	networkSwitches *prometheus.CounterVec
	walletConnects  *prometheus.CounterVec
	staleResults    *prometheus.CounterVec
	ipfsPins        *prometheus.CounterVec
	wsClients       prometheus.Gauge
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),

		outboundRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "requests_total",
			Help:      "Total number of outbound requests by target and status code.",
		}, []string{"target", "code", "method"}),
		outboundDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"target", "method"}),
		outboundInFlight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight outbound requests.",
		}, []string{"target"}),

		networkSwitches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "switches_total",
			Help:      "Total number of network switches by target network.",
		}, []string{"network"}),
		walletConnects: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "connects_total",
			Help:      "Total number of wallet connect attempts by result code.",
		}, []string{"wallet", "result"}),
		staleResults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "stale_results_total",
			Help:      "Total number of fetch results discarded because the network changed.",
		}, []string{"source"}),
		ipfsPins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ipfs",
			Name:      "pins_total",
			Help:      "Total number of IPFS pin attempts by result.",
		}, []string{"result"}),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "ws_clients",
			Help:      "Current number of connected websocket clients.",
		}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentClient returns a copy of c whose transport records outbound metrics under target.
func (m *Metrics) InstrumentClient(target string, c *http.Client) *http.Client {
	if m == nil {
		return c
	}
	out := *c
	out.Transport = m.InstrumentTransport(target, c.Transport)
	return &out
}

// InstrumentTransport wraps next so every round trip is recorded under target.
// A nil next means http.DefaultTransport.
func (m *Metrics) InstrumentTransport(target string, next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}
	if next == nil {
		next = http.DefaultTransport
	}
	labels := prometheus.Labels{"target": target}

	return promhttp.InstrumentRoundTripperInFlight(m.outboundInFlight.With(labels),
		promhttp.InstrumentRoundTripperCounter(m.outboundRequests.MustCurryWith(labels),
			promhttp.InstrumentRoundTripperDuration(m.outboundDuration.MustCurryWith(labels), next),
		),
	)
}

// InstrumentHandler wraps next with HTTP server metrics collection.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// websocket upgrades need the raw ResponseWriter
		if r.URL.Path == "/metrics" || r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// NetworkSwitched records an effective network change.
func (m *Metrics) NetworkSwitched(network string) {
	if m == nil {
		return
	}
	m.networkSwitches.WithLabelValues(network).Inc()
}

// WalletConnect records a connect attempt with its result code.
func (m *Metrics) WalletConnect(wallet, result string) {
	if m == nil {
		return
	}
	m.walletConnects.WithLabelValues(wallet, result).Inc()
}

// StaleResult records a fetch result discarded after a network change.
func (m *Metrics) StaleResult(source string) {
	if m == nil {
		return
	}
	m.staleResults.WithLabelValues(source).Inc()
}

// IPFSPin records an IPFS pin attempt.
func (m *Metrics) IPFSPin(success bool) {
	if m == nil {
		return
	}
	m.ipfsPins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// WSClientConnected adjusts the websocket client gauge by delta.
func (m *Metrics) WSClientConnected(delta int) {
	if m == nil {
		return
	}
	m.wsClients.Add(float64(delta))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath collapses ids so label cardinality stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	switch parts[0] {
	case "projects", "ipfs":
		if len(parts) > 1 && parts[1] != "pin" && parts[1] != "pins" {
			return "/" + parts[0] + "/:id"
		}
	case "swagger":
		return "/swagger"
	}
	return "/" + strings.Join(parts, "/")
}
