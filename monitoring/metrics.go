package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutSessions counts checkout session creation attempts per product
	// type and outcome.
	CheckoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session creation attempts",
		},
		[]string{"product_type", "status"},
	)

	// WebhookEvents counts inbound webhook events per type and outcome.
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Webhook events received",
		},
		[]string{"event_type", "status"},
	)

	// NotificationAttempts counts notification dispatches per channel and
	// outcome.
	NotificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_attempts_total",
			Help: "Notification dispatch attempts",
		},
		[]string{"channel", "status"},
	)

	// Uploads counts media upload relays per outcome.
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Media upload relay attempts",
		},
		[]string{"status"},
	)
)
