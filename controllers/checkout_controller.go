package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/apperrors"
	"github.com/vmackland-source/TGRoom/models"
	"github.com/vmackland-source/TGRoom/monitoring"
)

// OrderBuilder validates and prices a checkout draft.
type OrderBuilder interface {
	BuildOrder(draft models.CheckoutDraft) (models.ValidOrder, []models.FieldError)
}

// SessionCreator creates a hosted checkout session and returns its redirect
// URL.
type SessionCreator interface {
	CreateCheckoutSession(order models.ValidOrder, origin string) (string, error)
}

type CheckoutController struct {
	Orders      OrderBuilder
	Stripe      SessionCreator
	FrontendURL string
	Logger      *zap.Logger
}

// CreateCheckout validates the posted order draft and redirects the caller to
// a provider checkout session. Ineligible orders are refused before any
// external call; provider failures surface as a user-visible retry prompt.
func (cc *CheckoutController) CreateCheckout(c *gin.Context) {
	var draft models.CheckoutDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, fieldErrs := cc.Orders.BuildOrder(draft)
	if len(fieldErrs) > 0 {
		monitoring.CheckoutSessions.WithLabelValues(draft.Type, "rejected").Inc()
		cc.Logger.Info("checkout draft rejected",
			zap.String("product_type", draft.Type),
			zap.Int("field_errors", len(fieldErrs)),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "order not eligible", "fields": fieldErrs})
		return
	}

	url, err := cc.Stripe.CreateCheckoutSession(order, cc.origin(c))
	if err != nil {
		monitoring.CheckoutSessions.WithLabelValues(order.ProductType, "error").Inc()
		cc.Logger.Error("checkout session creation failed",
			zap.String("product_type", order.ProductType),
			zap.Error(err),
		)
		apperrors.Respond(c, apperrors.Transport("Could not start payment. Please try again.", err))
		return
	}

	monitoring.CheckoutSessions.WithLabelValues(order.ProductType, "ok").Inc()
	cc.Logger.Info("checkout session created",
		zap.String("product_type", order.ProductType),
		zap.String("amount", order.Amount.StringFixed(2)),
	)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// origin returns the redirect base: the caller's Origin header when present,
// otherwise the configured frontend URL.
func (cc *CheckoutController) origin(c *gin.Context) string {
	if o := c.GetHeader("Origin"); o != "" {
		return o
	}
	return cc.FrontendURL
}
