package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmission(nil)
	m.ObserveSubmission(errors.New("reverted"))
	m.ObserveSubmission(nil)
	m.ObserveRequest("GET", "/health", 200)
	m.ObserveVerification("found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrySubmissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrySubmissions.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("found")))
}
