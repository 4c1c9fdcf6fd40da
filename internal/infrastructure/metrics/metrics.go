package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "truthprevails"

type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	RegistrySubmissions *prometheus.CounterVec
	Verifications       *prometheus.CounterVec
	TamperAnalyses      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"}),
		RegistrySubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_submissions_total",
				Help:      "Hash registry submissions by result.",
			},
			[]string{"result"}),
		Verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Hash verifications by result.",
			},
			[]string{"result"}),
		TamperAnalyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tamper_analyses_total",
				Help:      "Tamper analyses by outcome.",
			},
			[]string{"status"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveSubmission(err error) {
	m.RegistrySubmissions.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) ObserveVerification(result string) {
	m.Verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTamper(status string) {
	m.TamperAnalyses.WithLabelValues(status).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
