package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_leads_ingested_total",
			Help: "Total number of lead webhooks fully processed",
		},
		[]string{"platform"},
	)

	eventsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_events_logged_total",
			Help: "Total number of events appended to the event log",
		},
		[]string{"source"},
	)

	eventPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_event_publish_errors_total",
			Help: "Total number of events that could not be published to the bus",
		},
		[]string{"bus"},
	)

	emailsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_queue_processed_total",
			Help: "Total number of queue items processed, by outcome",
		},
		[]string{"provider", "outcome"},
	)

	emailsUnmarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "email_queue_unmarked_total",
			Help: "Queue items whose sent/failed transition could not be recorded",
		},
	)

	signatureFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_signature_failures_total",
			Help: "Total number of webhook requests rejected for a bad signature",
		},
		[]string{"platform"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

func RecordLeadIngested(platform string) {
	leadsIngested.WithLabelValues(platform).Inc()
}

func RecordEventLogged(source string) {
	eventsLogged.WithLabelValues(source).Inc()
}

func RecordEventPublishError(bus string) {
	eventPublishErrors.WithLabelValues(bus).Inc()
}

func RecordEmailProcessed(provider, outcome string) {
	emailsProcessed.WithLabelValues(provider, outcome).Inc()
}

func RecordEmailUnmarked() {
	emailsUnmarked.Inc()
}

func RecordSignatureFailure(platform string) {
	signatureFailures.WithLabelValues(platform).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
