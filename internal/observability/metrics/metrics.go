package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead intake and notification flows.
type LeadMetrics struct {
	createdTotal  *prometheus.CounterVec
	emailsSent    *prometheus.CounterVec
	emailFailures *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pestcontrol",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total leads persisted by the intake endpoint",
		}, []string{"source"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pestcontrol",
			Subsystem: "notify",
			Name:      "emails_sent_total",
			Help:      "Total notification emails sent",
		}, []string{"kind"}),
		emailFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pestcontrol",
			Subsystem: "notify",
			Name:      "email_failures_total",
			Help:      "Total notification emails that failed to send",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal, m.emailsSent, m.emailFailures)
	return m
}

func (m *LeadMetrics) LeadCreated(source string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(source).Inc()
}

func (m *LeadMetrics) EmailSent(kind string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(kind).Inc()
}

func (m *LeadMetrics) EmailFailed(kind string) {
	if m == nil {
		return
	}
	m.emailFailures.WithLabelValues(kind).Inc()
}
