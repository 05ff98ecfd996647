package models

import (
	"github.com/shopspring/decimal"
)

// Product types recognized across checkout and the webhook dispatcher.
const (
	ProductMembership  = "membership"
	ProductReservation = "reservation"
	ProductSocialEntry = "social-entry"
	ProductMenuOrder   = "after-dark-order"
)

// FieldError describes a single failed eligibility check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Person holds the identity fields collected for an attendee. PhotoURL and
// IDNumber are only required where the product rules say so.
type Person struct {
	FullName string `json:"fullName"`
	DOB      string `json:"dob"`
	IDNumber string `json:"idNumber,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// MembershipDraft is the form state for a $60/year membership application.
type MembershipDraft struct {
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	FullName     string `json:"fullName"`
	DOB          string `json:"dob"`
	Address      string `json:"address"`
	WhyJoin      string `json:"whyJoin"`
	FavoriteItem string `json:"favoriteItem"`
	HowHeard     string `json:"howHeard"`
	PhotoURL     string `json:"photoUrl"`
}

// ReservationDraft is the form state for a cafe reservation.
type ReservationDraft struct {
	ContactName  string   `json:"contactName"`
	ContactEmail string   `json:"contactEmail"`
	ContactPhone string   `json:"contactPhone"`
	IsMember     bool     `json:"isMember"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	PartySize    int      `json:"partySize"`
	Guests       []Person `json:"guests"`
}

// SocialEntryDraft is the form state for a Social After Dark entry ticket.
// Members may bring at most one guest; non-members never may.
type SocialEntryDraft struct {
	ContactEmail string  `json:"contactEmail"`
	ContactPhone string  `json:"contactPhone"`
	IsMember     bool    `json:"isMember"`
	HowHeard     string  `json:"howHeard"`
	Self         Person  `json:"self"`
	Guest        *Person `json:"guest,omitempty"`
}

// MenuLine is one ordered line of the After Dark menu.
type MenuLine struct {
	Item    string `json:"item"`
	Qty     int    `json:"qty"`
	Enhance bool   `json:"enhance"`
}

// MenuOrderDraft is the form state for an à-la-carte After Dark order.
type MenuOrderDraft struct {
	Name         string     `json:"name"`
	ContactEmail string     `json:"contactEmail"`
	ContactPhone string     `json:"contactPhone"`
	Lines        []MenuLine `json:"lines"`
}

// CheckoutDraft is the tagged union posted to /api/checkout. Exactly one
// payload matching Type must be set.
type CheckoutDraft struct {
	Type        string            `json:"type" binding:"required"`
	Membership  *MembershipDraft  `json:"membership,omitempty"`
	Reservation *ReservationDraft `json:"reservation,omitempty"`
	SocialEntry *SocialEntryDraft `json:"socialEntry,omitempty"`
	MenuOrder   *MenuOrderDraft   `json:"order,omitempty"`
}

// ValidOrder is an eligible order, priced and ready for checkout. It is
// immutable once built; Metadata must carry every value a confirmation
// notification will need, because the payment provider is the only store.
type ValidOrder struct {
	ProductType string
	ProductName string
	Amount      decimal.Decimal
	Metadata    map[string]string
}

// AmountCents returns the order total in integer cents, as the payment
// provider expects.
func (o ValidOrder) AmountCents() int64 {
	return o.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
