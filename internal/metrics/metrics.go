// Package metrics collects and exposes Prometheus metrics for the auth flow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers and middleware use to record outcomes.
type Recorder interface {
	RecordLoginSuccess()
	RecordLoginFailure(reason string)
	RecordTokenVerification(result string)
	RecordRequestDuration(d time.Duration)
}

// Collector implements Recorder on top of Prometheus.
type Collector struct {
	loginSuccess    prometheus.Counter
	loginFailure    *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authsvc_login_success_total",
			Help: "Total successful OAuth logins.",
		}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authsvc_login_failure_total",
			Help: "Total failed OAuth logins by reason.",
		}, []string{"reason"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authsvc_token_verifications_total",
			Help: "Total session token verifications by result.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authsvc_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.loginSuccess, c.loginFailure, c.verifications, c.requestDuration)
	return c
}

// RecordLoginSuccess increments the successful login counter.
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure increments the failed login counter for the given reason.
func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailure.WithLabelValues(reason).Inc()
}

// RecordTokenVerification increments the verification counter for the given result.
func (c *Collector) RecordTokenVerification(result string) {
	c.verifications.WithLabelValues(result).Inc()
}

// RecordRequestDuration observes a request latency.
func (c *Collector) RecordRequestDuration(d time.Duration) {
	c.requestDuration.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the Prometheus exposition format
// for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
