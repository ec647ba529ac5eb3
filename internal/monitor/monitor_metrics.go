package monitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for checks and the alert queue.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec
	QueueDepth    prometheus.Gauge
	RejectedTotal *prometheus.CounterVec
	RenderedTotal *prometheus.CounterVec
}

// NewMetrics registers and returns monitor metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalwatch_checks_total",
			Help: "Total check requests by result.",
		}, []string{"result"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vitalwatch_alert_queue_depth",
			Help: "Alerts waiting to be rendered.",
		}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalwatch_alerts_rejected_total",
			Help: "Alerts refused by the queue, by reason.",
		}, []string{"reason"}),
		RenderedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalwatch_alerts_rendered_total",
			Help: "Alerts taken off the queue and rendered, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.ChecksTotal,
		m.QueueDepth,
		m.RejectedTotal,
		m.RenderedTotal,
	)

	return m
}

// Hooks returns DispatchHooks that update the queue metrics.
func (m *Metrics) Hooks() DispatchHooks {
	return DispatchHooks{
		OnEnqueue: func(depth int) {
			m.QueueDepth.Set(float64(depth))
		},
		OnReject: func(reason string) {
			m.RejectedTotal.WithLabelValues(reason).Inc()
		},
		OnRendered: func(depth int, err error) {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			m.RenderedTotal.WithLabelValues(outcome).Inc()
			m.QueueDepth.Set(float64(depth))
		},
	}
}
