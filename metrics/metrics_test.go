package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewCounter(t *testing.T) {
	c := NewCounter("test_counter", "metricstest", "test counter", []string{"kind"})
	c.WithLabelValues("a").Add(2)
	require.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("a")))
	require.Zero(t, testutil.ToFloat64(c.WithLabelValues("b")))
}

func TestStartPushingMetrics(t *testing.T) {
	var (
		pushes atomic.Int32
		body   atomic.Value
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/metrics/job/bloomsync/instance/test")
		data, _ := io.ReadAll(r.Body)
		body.Store(string(data))
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "pushed_total"})
	reg.MustRegister(c)
	c.Inc()

	ctx, cancel := context.WithCancel(context.Background())
	done := StartPushingMetrics(ctx, zaptest.NewLogger(t), reg, srv.URL, "test", 10*time.Millisecond)
	require.Eventually(t, func() bool { return pushes.Load() > 0 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "pusher didn't stop")
	}
	require.GreaterOrEqual(t, pushes.Load(), int32(2))
	require.Contains(t, body.Load().(string), "pushed_total")
}
