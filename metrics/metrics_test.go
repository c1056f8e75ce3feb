package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/urlkit/urlparse"
)

func TestRecordParse_Success(t *testing.T) {
	counter := parseTotal.With(prometheus.Labels{"scheme": "https", "status": StatusOK})
	before := testutil.ToFloat64(counter)

	RecordParse("https", nil, time.Microsecond, 20, 22)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordParse_Error(t *testing.T) {
	_, err := urlparse.Parse("http://")
	require.Error(t, err)

	total := parseTotal.With(prometheus.Labels{"scheme": "http", "status": StatusError})
	kind := parseErrors.With(prometheus.Labels{"kind": "host_missing"})
	beforeTotal := testutil.ToFloat64(total)
	beforeKind := testutil.ToFloat64(kind)

	RecordParse("http", err, time.Microsecond, 7, 0)

	assert.Equal(t, beforeTotal+1, testutil.ToFloat64(total))
	assert.Equal(t, beforeKind+1, testutil.ToFloat64(kind))
}

func TestRecordParse_UnknownScheme(t *testing.T) {
	counter := parseTotal.With(prometheus.Labels{"scheme": unknownScheme, "status": StatusError})
	unknown := parseErrors.With(prometheus.Labels{"kind": "unknown"})
	before := testutil.ToFloat64(counter)
	beforeUnknown := testutil.ToFloat64(unknown)

	RecordParse("", errors.New("boom"), 0, 0, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, beforeUnknown+1, testutil.ToFloat64(unknown))
}

func TestRecordScanInputs(t *testing.T) {
	before := testutil.ToFloat64(scanInputs)
	RecordScanInputs(3)
	assert.Equal(t, before+3, testutil.ToFloat64(scanInputs))
}

func TestRecordBreakerState(t *testing.T) {
	tests := []struct {
		name  string
		state gobreaker.State
		want  float64
	}{
		{"closed", gobreaker.StateClosed, 0},
		{"half-open", gobreaker.StateHalfOpen, 1},
		{"open", gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordBreakerState(tt.state)
			assert.Equal(t, tt.want, testutil.ToFloat64(breakerState))
		})
	}
}

func TestCreateMetricsServer(t *testing.T) {
	srv := CreateMetricsServer(":9464")
	assert.Equal(t, ":9464", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)

	RecordParse("wss", nil, time.Microsecond, 10, 10)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `urlkit_parse_total{scheme="wss",status="ok"}`))
	assert.True(t, strings.Contains(string(body), "urlkit_parse_duration_seconds_bucket"))
}
