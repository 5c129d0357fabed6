package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/metrics"
	"codeberg.org/mutker/actelemetry/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveSample(speed float32, laps int32) acpmf.Sample {
	var s acpmf.Sample
	s.SpeedKmh = speed
	s.Gas = 0.5
	s.Brake = 0.1
	s.Gear = 3
	s.Fuel = 20
	s.CompletedLaps = laps
	s.Status = acpmf.StatusLive
	return s
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	sess := session.New(time.Unix(0, 0))
	for i, s := range []acpmf.Sample{liveSample(100, 0), liveSample(150, 0), liveSample(120, 1)} {
		sess.Update(s, float64(i))
		c.Observe(s, sess)
	}

	expected := `
# HELP actelemetry_samples_total Telemetry samples taken
# TYPE actelemetry_samples_total counter
actelemetry_samples_total 3
# HELP actelemetry_laps_completed_total Laps completed during the session
# TYPE actelemetry_laps_completed_total counter
actelemetry_laps_completed_total 1
# HELP actelemetry_speed_kmh Current speed in km/h
# TYPE actelemetry_speed_kmh gauge
actelemetry_speed_kmh 120
# HELP actelemetry_top_speed_kmh Session top speed in km/h
# TYPE actelemetry_top_speed_kmh gauge
actelemetry_top_speed_kmh 150
# HELP actelemetry_gear Displayed gear, 0 for neutral or reverse
# TYPE actelemetry_gear gauge
actelemetry_gear 2
# HELP actelemetry_current_lap Lap being driven
# TYPE actelemetry_current_lap gauge
actelemetry_current_lap 2
# HELP actelemetry_simulator_status 1 for the current simulator status
# TYPE actelemetry_simulator_status gauge
actelemetry_simulator_status{status="live"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"actelemetry_samples_total",
		"actelemetry_laps_completed_total",
		"actelemetry_speed_kmh",
		"actelemetry_top_speed_kmh",
		"actelemetry_gear",
		"actelemetry_current_lap",
		"actelemetry_simulator_status",
	))
}

func TestObserveIgnoresLapsAlreadyCompleted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	sess := session.New(time.Unix(0, 0))
	s := liveSample(50, 4)
	sess.Update(s, 0)
	c.Observe(s, sess)

	n, err := testutil.GatherAndCount(reg, "actelemetry_laps_completed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "actelemetry_laps_completed_total" {
			assert.Zero(t, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, metrics.ErrRegisterFailed))
}

func TestServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	srv := metrics.Serve("127.0.0.1:0", reg)
	t.Cleanup(func() { _ = metrics.Shutdown(srv, time.Second) })

	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "actelemetry_samples_total 0")
}
