package controllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/models"
	"github.com/vmackland-source/TGRoom/services"
)

const testWebhookSecret = "whsec_test_secret"

type MockDispatcher struct {
	payments []models.CompletedPayment
}

func (m *MockDispatcher) Dispatch(ctx context.Context, p models.CompletedPayment) {
	m.payments = append(m.payments, p)
}

func newWebhookRouter(dispatcher *MockDispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	wc := &WebhookController{
		Stripe:   services.NewStripeService("sk_test_x", testWebhookSecret),
		Notifier: dispatcher,
		Logger:   zap.NewNop(),
	}
	r := gin.New()
	r.POST("/api/webhook", wc.HandleWebhook)
	return r
}

func eventPayload(eventType string, amountTotal int64, metadata map[string]string) []byte {
	metaJSON, _ := json.Marshal(metadata)
	return []byte(fmt.Sprintf(
		`{"id":"evt_test_1","api_version":%q,"type":%q,"data":{"object":{"id":"cs_test_1","amount_total":%d,"metadata":%s}}}`,
		stripe.APIVersion, eventType, amountTotal, metaJSON,
	))
}

func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookDispatchesCompletedCheckout(t *testing.T) {
	dispatcher := &MockDispatcher{}
	r := newWebhookRouter(dispatcher)

	payload := eventPayload("checkout.session.completed", 23000, map[string]string{
		"type":         "reservation",
		"contactEmail": "jordan@example.com",
	})
	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	require.Len(t, dispatcher.payments, 1)
	p := dispatcher.payments[0]
	assert.Equal(t, "evt_test_1", p.EventID)
	assert.Equal(t, int64(23000), p.AmountTotal)
	assert.Equal(t, "reservation", p.Metadata["type"])
}

func TestWebhookSignatureMismatchNeverDispatches(t *testing.T) {
	dispatcher := &MockDispatcher{}
	r := newWebhookRouter(dispatcher)

	payload := eventPayload("checkout.session.completed", 6000, map[string]string{"type": "membership"})
	w := postWebhook(r, payload, signPayload(payload, "whsec_wrong_secret"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, dispatcher.payments)
}

func TestWebhookMissingSignatureRejected(t *testing.T) {
	dispatcher := &MockDispatcher{}
	r := newWebhookRouter(dispatcher)

	payload := eventPayload("checkout.session.completed", 6000, nil)
	w := postWebhook(r, payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, dispatcher.payments)
}

func TestWebhookTamperedPayloadRejected(t *testing.T) {
	dispatcher := &MockDispatcher{}
	r := newWebhookRouter(dispatcher)

	payload := eventPayload("checkout.session.completed", 6000, nil)
	signature := signPayload(payload, testWebhookSecret)
	tampered := bytes.Replace(payload, []byte("6000"), []byte("1"), 1)
	w := postWebhook(r, tampered, signature)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, dispatcher.payments)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := &MockDispatcher{}
	r := newWebhookRouter(dispatcher)

	payload := eventPayload("payment_intent.succeeded", 6000, nil)
	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Empty(t, dispatcher.payments)
}
