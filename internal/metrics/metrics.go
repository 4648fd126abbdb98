package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EmailsSent counts transactional emails by kind
	// (order_confirmation, payment_confirmed, payment_failed, test).
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_emails_sent_total",
		Help: "Transactional emails sent, by kind.",
	}, []string{"kind"})

	// EmailFailures counts emails that the transport rejected.
	EmailFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_email_failures_total",
		Help: "Transactional emails that failed to send, by kind.",
	}, []string{"kind"})

	// WebhookEvents counts processed payment webhooks by event type
	// and outcome (handled, duplicate, unhandled, invalid).
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_webhook_events_total",
		Help: "Payment webhook events, by type and result.",
	}, []string{"type", "result"})

	// PaymentIntents counts payment intents created with the processor.
	PaymentIntents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_payment_intents_created_total",
		Help: "Payment intents created.",
	})
)
