package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/apperrors"
	"github.com/vmackland-source/TGRoom/models"
	"github.com/vmackland-source/TGRoom/monitoring"
)

// WebhookParser authenticates an inbound provider event against the signing
// secret, requiring the raw request body.
type WebhookParser interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// Dispatcher fans a completed payment out to the notification channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, p models.CompletedPayment)
}

type WebhookController struct {
	Stripe   WebhookParser
	Notifier Dispatcher
	Logger   *zap.Logger
}

// HandleWebhook receives a signed provider event. Verification fails closed
// with 400 and no side effects. Event types other than checkout completion
// are acknowledged and ignored. Failures before the notification fan-out
// return 500 so the provider redelivers; once fan-out starts the event is
// acknowledged regardless of individual channel outcomes.
func (wc *WebhookController) HandleWebhook(c *gin.Context) {
	event, err := wc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		monitoring.WebhookEvents.WithLabelValues("unknown", "signature_error").Inc()
		wc.Logger.Warn("webhook signature verification failed", zap.Error(err))
		apperrors.Respond(c, apperrors.Signature(err))
		return
	}

	if event.Type != "checkout.session.completed" {
		monitoring.WebhookEvents.WithLabelValues(string(event.Type), "ignored").Inc()
		wc.Logger.Info("ignoring webhook event type",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
		)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		monitoring.WebhookEvents.WithLabelValues(string(event.Type), "error").Inc()
		wc.Logger.Error("failed to unmarshal checkout session",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook handler failed"})
		return
	}

	payment := models.CompletedPayment{
		EventID:     event.ID,
		AmountTotal: sess.AmountTotal,
		Metadata:    sess.Metadata,
	}

	wc.Logger.Info("processing completed checkout",
		zap.String("event_id", event.ID),
		zap.String("product_type", payment.ProductType()),
		zap.Int64("amount_cents", payment.AmountTotal),
	)

	wc.Notifier.Dispatch(c.Request.Context(), payment)

	monitoring.WebhookEvents.WithLabelValues(string(event.Type), "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"received": true})
}
