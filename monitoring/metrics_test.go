package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestCountsErrors(t *testing.T) {
	m := Reset()

	m.ObserveRequest("GET", "/api/checkin/recent", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/checkin", 404, time.Millisecond)
	m.ObserveRequest("POST", "/api/checkin", 404, time.Millisecond)
	m.ObserveRequest("POST", "/api/trainers/:id/book", 409, time.Millisecond)
	m.ObserveRequest("GET", "", 500, time.Millisecond)

	summary, err := m.ErrorSummary()
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, ErrorCount{Route: "/api/checkin", Status: "404", Count: 2}, summary[0])
	assert.Equal(t, "unmatched", summary[2].Route)
}

func TestResetStartsFromZero(t *testing.T) {
	m := Reset()
	m.CheckInRecorded("manual")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkIns.WithLabelValues("manual")))

	m = Reset()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.checkIns.WithLabelValues("manual")))
	assert.Same(t, m, Get())
}

func TestDomainCounters(t *testing.T) {
	m := Reset()
	m.PointsAwarded("consistency_bonus", 10)
	m.PointsAwarded("consistency_bonus", 10)
	m.PointsDeducted("redemption", 5)
	m.ConsistencyAwarded()
	m.BookingConflict("trainer")

	assert.Equal(t, 20.0, testutil.ToFloat64(m.pointsAwarded.WithLabelValues("consistency_bonus")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.pointsDeducted.WithLabelValues("redemption")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.consistencyWeeks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("trainer")))
}

func TestRegisterCache(t *testing.T) {
	m := Reset()
	require.NoError(t, m.RegisterCache("geoip", func() (int64, int64, int) { return 3, 1, 2 }))
	assert.Error(t, m.RegisterCache("geoip", func() (int64, int64, int) { return 0, 0, 0 }))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), "gym_geoip_cache_hits_total 3")
	assert.Contains(t, string(body), "gym_geoip_cache_misses_total 1")
	assert.Contains(t, string(body), "gym_geoip_cache_items 2")
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := Init()
	m.CheckInRecorded("qr_code")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `gym_checkins_total{type="qr_code"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
