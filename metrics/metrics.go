package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/jongio/urlkit/urlparse"
)

// Status label values for urlkit_parse_total.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// unknownScheme labels parses that failed before a scheme was read.
const unknownScheme = "none"

var (
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_parse_total",
			Help: "Total number of URL parses by scheme and outcome",
		},
		[]string{"scheme", "status"},
	)

	parseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlkit_parse_errors_total",
			Help: "Total number of failed URL parses by error kind",
		},
		[]string{"kind"},
	)

	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "urlkit_parse_duration_seconds",
			Help:    "Duration of a single URL parse in seconds",
			Buckets: []float64{.000001, .0000025, .000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .01},
		},
	)

	expansionRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "urlkit_encoding_expansion_ratio",
			Help:    "Serialized length divided by input length for successful parses",
			Buckets: []float64{.5, .75, .9, 1, 1.1, 1.25, 1.5, 2, 3},
		},
	)

	scanInputs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "urlkit_scan_inputs_total",
			Help: "Total number of inputs submitted to batch scans",
		},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "urlkit_scan_breaker_state",
			Help: "Scan circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// RecordParse records one parse attempt. scheme may be empty when the
// input failed before its scheme was recognized. inLen and outLen are the
// input and serialized lengths; the expansion ratio is only observed for
// successful parses of non-empty input.
func RecordParse(scheme string, err error, dur time.Duration, inLen, outLen int) {
	if scheme == "" {
		scheme = unknownScheme
	}

	status := StatusOK
	if err != nil {
		status = StatusError
		parseErrors.With(prometheus.Labels{"kind": urlparse.KindName(err)}).Inc()
	}

	parseTotal.With(prometheus.Labels{"scheme": scheme, "status": status}).Inc()
	parseDuration.Observe(dur.Seconds())

	if err == nil && inLen > 0 {
		expansionRatio.Observe(float64(outLen) / float64(inLen))
	}
}

// RecordScanInputs adds n to the scan input counter.
func RecordScanInputs(n int) {
	scanInputs.Add(float64(n))
}

// RecordBreakerState records the scan circuit breaker state.
func RecordBreakerState(state gobreaker.State) {
	var value float64
	switch state {
	case gobreaker.StateClosed:
		value = 0
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	breakerState.Set(value)
}

// CreateMetricsServer creates a configured HTTP server exposing /metrics
// and /health on addr (for example ":9464" or "127.0.0.1:9464").
func CreateMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
