package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/models"
)

type MockOrderBuilder struct {
	order models.ValidOrder
	errs  []models.FieldError
}

func (m *MockOrderBuilder) BuildOrder(draft models.CheckoutDraft) (models.ValidOrder, []models.FieldError) {
	return m.order, m.errs
}

type MockSessionCreator struct {
	url       string
	err       error
	gotOrder  models.ValidOrder
	gotOrigin string
	called    int
}

func (m *MockSessionCreator) CreateCheckoutSession(order models.ValidOrder, origin string) (string, error) {
	m.called++
	m.gotOrder = order
	m.gotOrigin = origin
	return m.url, m.err
}

func newCheckoutRouter(orders *MockOrderBuilder, stripe *MockSessionCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cc := &CheckoutController{
		Orders:      orders,
		Stripe:      stripe,
		FrontendURL: "http://localhost:3000",
		Logger:      zap.NewNop(),
	}
	r := gin.New()
	r.POST("/api/checkout", cc.CreateCheckout)
	return r
}

func postCheckout(r *gin.Engine, body string, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutReturnsRedirectURL(t *testing.T) {
	orders := &MockOrderBuilder{order: models.ValidOrder{
		ProductType: models.ProductMembership,
		ProductName: "The Green Room Membership",
		Amount:      decimal.NewFromInt(60),
		Metadata:    map[string]string{"type": "membership"},
	}}
	stripe := &MockSessionCreator{url: "https://checkout.example/cs_test"}
	r := newCheckoutRouter(orders, stripe)

	w := postCheckout(r, `{"type":"membership","membership":{}}`, "https://thegreenroom.example")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.example/cs_test", resp["url"])
	assert.Equal(t, 1, stripe.called)
	assert.Equal(t, "https://thegreenroom.example", stripe.gotOrigin)
	assert.Equal(t, models.ProductMembership, stripe.gotOrder.ProductType)
}

func TestCreateCheckoutFallsBackToConfiguredFrontendURL(t *testing.T) {
	orders := &MockOrderBuilder{order: models.ValidOrder{ProductType: models.ProductMenuOrder}}
	stripe := &MockSessionCreator{url: "https://checkout.example/cs"}
	r := newCheckoutRouter(orders, stripe)

	w := postCheckout(r, `{"type":"after-dark-order","order":{}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", stripe.gotOrigin)
}

func TestCreateCheckoutRefusesIneligibleOrder(t *testing.T) {
	orders := &MockOrderBuilder{errs: []models.FieldError{
		{Field: "dob", Message: "must be 21 or older"},
	}}
	stripe := &MockSessionCreator{url: "https://checkout.example/cs"}
	r := newCheckoutRouter(orders, stripe)

	w := postCheckout(r, `{"type":"membership","membership":{}}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dob")
	// Ineligible orders never reach the provider.
	assert.Equal(t, 0, stripe.called)
}

func TestCreateCheckoutSurfacesProviderFailure(t *testing.T) {
	orders := &MockOrderBuilder{order: models.ValidOrder{ProductType: models.ProductReservation}}
	stripe := &MockSessionCreator{err: fmt.Errorf("stripe unreachable")}
	r := newCheckoutRouter(orders, stripe)

	w := postCheckout(r, `{"type":"reservation","reservation":{}}`, "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Could not start payment")
}

func TestCreateCheckoutRejectsMalformedBody(t *testing.T) {
	orders := &MockOrderBuilder{}
	stripe := &MockSessionCreator{}
	r := newCheckoutRouter(orders, stripe)

	w := postCheckout(r, `{"amount":`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stripe.called)
}
