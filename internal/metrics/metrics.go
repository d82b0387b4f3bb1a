// Package metrics records deposit, notification and mail-queue outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is implemented by Prometheus and by NoopCollector.
type Collector interface {
	RecordDeposit(result string)
	RecordOperationDuration(op string, duration time.Duration)
	RecordNotification(channel, result string)
	RecordMailJob(result string)
}

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
	ResultRetried = "retried"
	ResultDead    = "dead_letter"
)

type PrometheusCollector struct {
	deposits      *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	mailJobs      *prometheus.CounterVec
}

// NewPrometheusCollector registers the collectors on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		deposits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposits_recorded_total",
				Help: "Deposit requests by result",
			},
			[]string{"result"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deposit_operation_duration_seconds",
				Help:    "Duration of deposit and notification operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"operation"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_dispatch_total",
				Help: "Notification channel dispatches by channel and result",
			},
			[]string{"channel", "result"},
		),
		mailJobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mail_jobs_processed_total",
				Help: "Mail queue jobs by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(c.deposits, c.durations, c.notifications, c.mailJobs)
	return c
}

func (c *PrometheusCollector) RecordDeposit(result string) {
	c.deposits.WithLabelValues(result).Inc()
}

func (c *PrometheusCollector) RecordOperationDuration(op string, duration time.Duration) {
	c.durations.WithLabelValues(op).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordNotification(channel, result string) {
	c.notifications.WithLabelValues(channel, result).Inc()
}

func (c *PrometheusCollector) RecordMailJob(result string) {
	c.mailJobs.WithLabelValues(result).Inc()
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordDeposit(string)                           {}
func (NoopCollector) RecordOperationDuration(string, time.Duration) {}
func (NoopCollector) RecordNotification(string, string)              {}
func (NoopCollector) RecordMailJob(string)                           {}
