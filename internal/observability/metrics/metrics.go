package metrics

import "github.com/prometheus/client_golang/prometheus"

// AppointmentMetrics exposes counters for the scheduling flows.
type AppointmentMetrics struct {
	createdTotal       *prometheus.CounterVec
	updatedTotal       *prometheus.CounterVec
	deletedTotal       prometheus.Counter
	notificationsTotal *prometheus.CounterVec
}

func NewAppointmentMetrics(reg prometheus.Registerer) *AppointmentMetrics {
	m := &AppointmentMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bencare",
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Total appointments created",
		}, []string{"status"}),
		updatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bencare",
			Subsystem: "appointments",
			Name:      "updated_total",
			Help:      "Total appointment updates",
		}, []string{"type"}),
		deletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bencare",
			Subsystem: "appointments",
			Name:      "deleted_total",
			Help:      "Total appointments deleted",
		}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bencare",
			Subsystem: "notify",
			Name:      "sms_total",
			Help:      "Total SMS notification attempts",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal, m.updatedTotal, m.deletedTotal, m.notificationsTotal)
	return m
}

func (m *AppointmentMetrics) ObserveCreated(status string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(status).Inc()
}

func (m *AppointmentMetrics) ObserveUpdated(updateType string) {
	if m == nil {
		return
	}
	m.updatedTotal.WithLabelValues(updateType).Inc()
}

func (m *AppointmentMetrics) ObserveDeleted() {
	if m == nil {
		return
	}
	m.deletedTotal.Inc()
}

func (m *AppointmentMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(status).Inc()
}
