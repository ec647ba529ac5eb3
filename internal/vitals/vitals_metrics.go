package vitals

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for vital classification.
type Metrics struct {
	AssessmentsTotal *prometheus.CounterVec
	AlertsTotal      *prometheus.CounterVec
	AlertDuration    *prometheus.HistogramVec
	LastValue        *prometheus.GaugeVec
}

// NewMetrics registers and returns vitals metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalwatch_assessments_total",
			Help: "Total vital readings classified, by vital and severity.",
		}, []string{"vital", "severity"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalwatch_alerts_total",
			Help: "Alerts handed to the alerter, by vital, severity and outcome. A queueing alerter counts on acceptance, not on display.",
		}, []string{"vital", "severity", "outcome"}),
		AlertDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vitalwatch_alert_duration_seconds",
			Help:    "Time spent in the alerter call: the full blink for a console, only the enqueue for a queue.",
			Buckets: prometheus.LinearBuckets(0, 2, 10), // 0s .. 18s
		}, []string{"vital"}),
		LastValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vitalwatch_last_value",
			Help: "Most recent classified value per vital.",
		}, []string{"vital"}),
	}

	reg.MustRegister(
		m.AssessmentsTotal,
		m.AlertsTotal,
		m.AlertDuration,
		m.LastValue,
	)

	return m
}

// Hooks returns EngineHooks that update the corresponding metrics.
func (m *Metrics) Hooks() EngineHooks {
	return EngineHooks{
		OnAssess: func(a Assessment) {
			m.AssessmentsTotal.WithLabelValues(a.Vital, string(a.Severity)).Inc()
			m.LastValue.WithLabelValues(a.Vital).Set(a.Value)
		},
		OnAlert: func(vital string, severity Severity, duration float64, err error) {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			m.AlertsTotal.WithLabelValues(vital, string(severity), outcome).Inc()
			m.AlertDuration.WithLabelValues(vital).Observe(duration)
		},
	}
}
