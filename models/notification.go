package models

import "github.com/shopspring/decimal"

// CompletedPayment is the provider's checkout-completed event reduced to what
// the dispatcher needs. Metadata comes back verbatim from checkout time.
type CompletedPayment struct {
	EventID     string
	AmountTotal int64 // cents
	Metadata    map[string]string
}

// Amount returns the paid total in currency units.
func (p CompletedPayment) Amount() decimal.Decimal {
	return decimal.NewFromInt(p.AmountTotal).Div(decimal.NewFromInt(100))
}

// ProductType returns the product type carried in metadata, defaulting to a
// generic "order" when absent.
func (p CompletedPayment) ProductType() string {
	if t := p.Metadata["type"]; t != "" {
		return t
	}
	return "order"
}

// Notification is a rendered confirmation: one email and one SMS covering the
// same facts.
type Notification struct {
	Subject string
	HTML    string
	SMS     string
}
