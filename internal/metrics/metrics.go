// Package metrics holds the Prometheus collectors shared by the API and the worker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	authz       *prometheus.CounterVec
	jobs        *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

// New registers every collector against registerer.
func New(registerer prometheus.Registerer) *Metrics {
	authz := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_authz_decisions_total",
		Help: "Authorization decisions partitioned by permission and outcome.",
	}, []string{"permission", "outcome"})
	jobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_jobs_total",
		Help: "Background job executions partitioned by task type and status.",
	}, []string{"task", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "consultorio_job_duration_seconds",
		Help:    "Duration in seconds of background job executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
	registerer.MustRegister(authz, jobs, jobDuration)
	return &Metrics{authz: authz, jobs: jobs, jobDuration: jobDuration}
}

// Observe counts one gate decision.
func (m *Metrics) Observe(permission, outcome string) {
	if m == nil {
		return
	}
	m.authz.WithLabelValues(permission, outcome).Inc()
}

// Tracker instruments a single job run.
type Tracker struct {
	metrics *Metrics
	task    string
	start   time.Time
}

func (m *Metrics) Track(task string) *Tracker {
	return &Tracker{metrics: m, task: task, start: time.Now()}
}

// End records the run and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.jobs.WithLabelValues(t.task, status).Inc()
	t.metrics.jobDuration.WithLabelValues(t.task).Observe(time.Since(t.start).Seconds())
	return err
}
