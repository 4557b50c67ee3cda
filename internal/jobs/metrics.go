// Package jobmetrics holds the Prometheus collectors the biztime worker
// publishes on WORKER_METRICS_ADDR.
package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "biztime"

// Metrics groups worker collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	overdueCount  prometheus.Gauge
	overdueAmount prometheus.Gauge
	paid          prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Finished task runs by task type and outcome.",
		}, []string{"job", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_failures_total",
			Help:      "Task runs that returned an error.",
		}, []string{"job"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of task runs.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"job"}),
		overdueCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "invoices_overdue",
			Help:      "Unpaid invoices past the overdue threshold at the last scan.",
		}),
		overdueAmount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "invoices_overdue_amount",
			Help:      "Total amt of overdue invoices at the last scan.",
		}),
		paid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_paid_total",
			Help:      "Invoice-paid events handled by the worker.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.failures, m.duration, m.overdueCount, m.overdueAmount, m.paid)
	}
	return m
}

// Tracker times one task run.
type Tracker struct {
	m     *Metrics
	job   string
	start time.Time
}

// Track starts timing a run of job.
func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{m: m, job: job, start: time.Now()}
}

// End records the outcome of the run and returns err unchanged, so handlers
// can write `return tracker.End(err)`.
func (t *Tracker) End(err error) error {
	if t == nil || t.m == nil {
		return err
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
		t.m.failures.WithLabelValues(t.job).Inc()
	}
	t.m.runs.WithLabelValues(t.job, outcome).Inc()
	t.m.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// SetOverdue publishes the result of the latest overdue scan.
func (m *Metrics) SetOverdue(count int, amount float64) {
	if m == nil {
		return
	}
	m.overdueCount.Set(float64(count))
	m.overdueAmount.Set(amount)
}

// IncPaid counts a handled invoice-paid event.
func (m *Metrics) IncPaid() {
	if m == nil {
		return
	}
	m.paid.Inc()
}
