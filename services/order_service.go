package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vmackland-source/TGRoom/models"
	"github.com/vmackland-source/TGRoom/utils"
)

// Pricing constants. All prices are USD major units.
var (
	membershipPrice = decimal.NewFromInt(60)

	reservationPricePerPerson = decimal.NewFromInt(80)
	reservationMemberDiscount = decimal.NewFromInt(10)

	socialMemberPrice    = decimal.NewFromInt(10)
	socialGuestPrice     = decimal.NewFromInt(15)
	socialNonMemberPrice = decimal.NewFromInt(20)

	menuEnhancementPrice = decimal.NewFromInt(5)
)

const (
	maxPartySize = 4
	minAge       = 21
	maxMenuQty   = 10
)

// Reservation time slots, 5 PM through 10 PM hourly.
var reservationTimeSlots = []string{
	"5:00 PM", "6:00 PM", "7:00 PM", "8:00 PM", "9:00 PM", "10:00 PM",
}

type menuItem struct {
	Key        string
	Label      string
	Price      decimal.Decimal
	CanEnhance bool
}

// After Dark menu. Dessert cannot take the enhancement.
var menuCatalog = []menuItem{
	{Key: "wings", Label: "Chicken Wings", Price: decimal.NewFromInt(14), CanEnhance: true},
	{Key: "mozz", Label: "Mozzarella Sticks", Price: decimal.NewFromInt(11), CanEnhance: true},
	{Key: "truffle", Label: "Truffle Fries", Price: decimal.NewFromInt(12), CanEnhance: true},
	{Key: "pretzel", Label: "Pretzel Bites", Price: decimal.NewFromInt(9), CanEnhance: true},
	{Key: "dessert", Label: "Dessert of the Day", Price: decimal.NewFromInt(10), CanEnhance: false},
}

// Policy copy serialized into checkout metadata so the webhook can render it
// without any other store of truth.
const (
	reservationPolicy = "Cancellation & Refund Policy: 50% refund if cancelled at least 24 hours prior to the scheduled reservation time. No full refunds. No refund within 24 hours. Be on time; dining time is 1.5-2 hours."
	reservationNotes  = "Dining window: 1.5-2 hours. Friday & Saturday only. Max party size 4. All guests must be 21+ (IDs checked on arrival)."
	membershipPerks   = "$10 entry to Social After Dark; $10 off Cafe Reservations. One-year membership."
	membershipQRNote  = "A unique QR code will be issued after review; save it to your phone. IDs checked on arrival."
	menuPolicy        = "Menu subject to change."
)

// OrderService validates order drafts and assembles checkout requests.
// The clock is injectable so age checks are testable.
type OrderService struct {
	now func() time.Time
}

func NewOrderService() *OrderService {
	return &OrderService{now: time.Now}
}

// BuildOrder dispatches on the draft's product type, checks eligibility and
// computes the total. An order is returned only when the field error list is
// empty; ineligible drafts never reach the payment provider.
func (s *OrderService) BuildOrder(draft models.CheckoutDraft) (models.ValidOrder, []models.FieldError) {
	switch draft.Type {
	case models.ProductMembership:
		if draft.Membership == nil {
			return models.ValidOrder{}, missingPayload("membership")
		}
		return s.buildMembership(*draft.Membership)
	case models.ProductReservation:
		if draft.Reservation == nil {
			return models.ValidOrder{}, missingPayload("reservation")
		}
		return s.buildReservation(*draft.Reservation)
	case models.ProductSocialEntry:
		if draft.SocialEntry == nil {
			return models.ValidOrder{}, missingPayload("socialEntry")
		}
		return s.buildSocialEntry(*draft.SocialEntry)
	case models.ProductMenuOrder:
		if draft.MenuOrder == nil {
			return models.ValidOrder{}, missingPayload("order")
		}
		return s.buildMenuOrder(*draft.MenuOrder)
	default:
		return models.ValidOrder{}, []models.FieldError{{Field: "type", Message: "unknown product type"}}
	}
}

func missingPayload(field string) []models.FieldError {
	return []models.FieldError{{Field: field, Message: "missing order payload"}}
}

// ageOf returns the calendar age for a YYYY-MM-DD DOB, or -1 when the date is
// missing or unparseable.
func (s *OrderService) ageOf(dob string) int {
	d, ok := utils.ParseDate(dob)
	if !ok {
		return -1
	}
	return utils.Age(d, s.now())
}

func (s *OrderService) buildMembership(d models.MembershipDraft) (models.ValidOrder, []models.FieldError) {
	var errs []models.FieldError

	if !utils.ValidEmail(d.ContactEmail) {
		errs = append(errs, models.FieldError{Field: "contactEmail", Message: "valid email required"})
	}
	if utils.NormalizePhone(d.ContactPhone) == "" {
		errs = append(errs, models.FieldError{Field: "contactPhone", Message: "phone required"})
	}
	if d.FullName == "" {
		errs = append(errs, models.FieldError{Field: "fullName", Message: "full name required"})
	}
	if age := s.ageOf(d.DOB); age < minAge {
		errs = append(errs, models.FieldError{Field: "dob", Message: "must be 21 or older"})
	}
	if d.Address == "" {
		errs = append(errs, models.FieldError{Field: "address", Message: "address required"})
	}
	if d.PhotoURL == "" {
		errs = append(errs, models.FieldError{Field: "photoUrl", Message: "photo required"})
	}
	for field, value := range map[string]string{
		"whyJoin":      d.WhyJoin,
		"favoriteItem": d.FavoriteItem,
		"howHeard":     d.HowHeard,
	} {
		if value == "" {
			errs = append(errs, models.FieldError{Field: field, Message: "response required"})
		}
	}
	if len(errs) > 0 {
		return models.ValidOrder{}, errs
	}

	return models.ValidOrder{
		ProductType: models.ProductMembership,
		ProductName: "The Green Room Membership",
		Amount:      membershipPrice,
		Metadata: map[string]string{
			"type":         models.ProductMembership,
			"contactEmail": d.ContactEmail,
			"contactPhone": utils.NormalizePhone(d.ContactPhone),
			"fullName":     d.FullName,
			"dob":          d.DOB,
			"address":      d.Address,
			"whyJoin":      d.WhyJoin,
			"favoriteItem": d.FavoriteItem,
			"howHeard":     d.HowHeard,
			"over21":       "true",
			"photoUrl":     d.PhotoURL,
			"perks":        membershipPerks,
			"qrNote":       membershipQRNote,
		},
	}, nil
}

func (s *OrderService) buildReservation(d models.ReservationDraft) (models.ValidOrder, []models.FieldError) {
	var errs []models.FieldError

	if d.ContactName == "" {
		errs = append(errs, models.FieldError{Field: "contactName", Message: "full name required"})
	}
	if !utils.ValidEmail(d.ContactEmail) {
		errs = append(errs, models.FieldError{Field: "contactEmail", Message: "valid email required"})
	}
	if !utils.IsFriOrSat(d.Date) {
		errs = append(errs, models.FieldError{Field: "date", Message: "Friday or Saturday date required"})
	}
	if !isTimeSlot(d.Time) {
		errs = append(errs, models.FieldError{Field: "time", Message: "select a published time slot"})
	}
	if d.PartySize < 1 || d.PartySize > maxPartySize {
		errs = append(errs, models.FieldError{Field: "partySize", Message: fmt.Sprintf("party size must be between 1 and %d", maxPartySize)})
	} else if len(d.Guests) < d.PartySize {
		errs = append(errs, models.FieldError{Field: "guests", Message: "name and date of birth required for every guest"})
	} else {
		for i := 0; i < d.PartySize; i++ {
			g := d.Guests[i]
			if g.FullName == "" || s.ageOf(g.DOB) < minAge {
				errs = append(errs, models.FieldError{
					Field:   fmt.Sprintf("guests[%d]", i),
					Message: "guest must have a name and be 21 or older",
				})
			}
		}
	}
	if len(errs) > 0 {
		return models.ValidOrder{}, errs
	}

	subtotal := reservationPricePerPerson.Mul(decimal.NewFromInt(int64(d.PartySize)))
	total := subtotal
	if d.IsMember {
		total = total.Sub(reservationMemberDiscount)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	type guestOut struct {
		FullName string `json:"fullName"`
		DOB      string `json:"dob"`
		Age      int    `json:"age"`
	}
	guests := make([]guestOut, 0, d.PartySize)
	for i := 0; i < d.PartySize; i++ {
		g := d.Guests[i]
		guests = append(guests, guestOut{FullName: g.FullName, DOB: g.DOB, Age: s.ageOf(g.DOB)})
	}
	guestsJSON, _ := json.Marshal(guests)

	return models.ValidOrder{
		ProductType: models.ProductReservation,
		ProductName: "Cafe Reservation",
		Amount:      total,
		Metadata: map[string]string{
			"type":         models.ProductReservation,
			"contactEmail": d.ContactEmail,
			"contactPhone": utils.NormalizePhone(d.ContactPhone),
			"name":         d.ContactName,
			"partySize":    strconv.Itoa(d.PartySize),
			"date":         d.Date,
			"time":         d.Time,
			"isMember":     strconv.FormatBool(d.IsMember),
			"guests":       string(guestsJSON),
			"policy":       reservationPolicy,
			"notes":        reservationNotes,
		},
	}, nil
}

func isTimeSlot(t string) bool {
	for _, slot := range reservationTimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

func (s *OrderService) buildSocialEntry(d models.SocialEntryDraft) (models.ValidOrder, []models.FieldError) {
	var errs []models.FieldError

	if !utils.ValidEmail(d.ContactEmail) {
		errs = append(errs, models.FieldError{Field: "contactEmail", Message: "valid email required"})
	}
	if utils.NormalizePhone(d.ContactPhone) == "" {
		errs = append(errs, models.FieldError{Field: "contactPhone", Message: "phone required"})
	}

	// Everyone entering is identity-checked at the door; photo and state ID
	// are collected up front for non-members and guests.
	requirePerson := func(field string, p models.Person, requireID bool) {
		if p.FullName == "" {
			errs = append(errs, models.FieldError{Field: field + ".fullName", Message: "full name required"})
		}
		if s.ageOf(p.DOB) < minAge {
			errs = append(errs, models.FieldError{Field: field + ".dob", Message: "must be 21 or older"})
		}
		if requireID {
			if p.PhotoURL == "" {
				errs = append(errs, models.FieldError{Field: field + ".photoUrl", Message: "photo required"})
			}
			if p.IDNumber == "" {
				errs = append(errs, models.FieldError{Field: field + ".idNumber", Message: "state ID number required"})
			}
		}
	}

	if d.IsMember {
		requirePerson("self", d.Self, false)
		if d.Guest != nil {
			requirePerson("guest", *d.Guest, true)
		}
	} else {
		requirePerson("self", d.Self, true)
		if d.Guest != nil {
			errs = append(errs, models.FieldError{Field: "guest", Message: "only members may add a guest"})
		}
	}
	if len(errs) > 0 {
		return models.ValidOrder{}, errs
	}

	total := socialNonMemberPrice
	if d.IsMember {
		total = socialMemberPrice
		if d.Guest != nil {
			total = total.Add(socialGuestPrice)
		}
	}

	meta := map[string]string{
		"type":         models.ProductSocialEntry,
		"contactEmail": d.ContactEmail,
		"contactPhone": utils.NormalizePhone(d.ContactPhone),
		"fullName":     d.Self.FullName,
		"dob":          d.Self.DOB,
		"isMember":     strconv.FormatBool(d.IsMember),
	}
	if d.Self.IDNumber != "" {
		meta["idNumber"] = d.Self.IDNumber
	}
	if d.Self.PhotoURL != "" {
		meta["photoUrl"] = d.Self.PhotoURL
	}
	if d.HowHeard != "" {
		meta["howHeard"] = d.HowHeard
	}
	if d.Guest != nil {
		guestJSON, _ := json.Marshal(struct {
			FullName string `json:"fullName"`
			DOB      string `json:"dob"`
			Age      int    `json:"age"`
			IDNumber string `json:"idNumber"`
			PhotoURL string `json:"photoUrl"`
		}{d.Guest.FullName, d.Guest.DOB, s.ageOf(d.Guest.DOB), d.Guest.IDNumber, d.Guest.PhotoURL})
		meta["guest"] = string(guestJSON)
	}

	return models.ValidOrder{
		ProductType: models.ProductSocialEntry,
		ProductName: "Social After Dark Entry",
		Amount:      total,
		Metadata:    meta,
	}, nil
}

func (s *OrderService) buildMenuOrder(d models.MenuOrderDraft) (models.ValidOrder, []models.FieldError) {
	var errs []models.FieldError

	if d.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "name required"})
	}
	if !utils.ValidEmail(d.ContactEmail) {
		errs = append(errs, models.FieldError{Field: "contactEmail", Message: "valid email required"})
	}

	type lineOut struct {
		Label       string  `json:"label"`
		Qty         int     `json:"qty"`
		UnitPrice   float64 `json:"unitPrice"`
		Enhancement string  `json:"enhancement"`
	}
	var lines []lineOut
	subtotal := decimal.Zero
	enhancementTotal := decimal.Zero

	for i, line := range d.Lines {
		item, ok := findMenuItem(line.Item)
		if !ok {
			errs = append(errs, models.FieldError{Field: fmt.Sprintf("lines[%d].item", i), Message: "unknown menu item"})
			continue
		}
		if line.Qty < 0 || line.Qty > maxMenuQty {
			errs = append(errs, models.FieldError{Field: fmt.Sprintf("lines[%d].qty", i), Message: fmt.Sprintf("quantity must be between 0 and %d", maxMenuQty)})
			continue
		}
		if line.Enhance && !item.CanEnhance {
			errs = append(errs, models.FieldError{Field: fmt.Sprintf("lines[%d].enhance", i), Message: "enhancement not available for this item"})
			continue
		}
		if line.Qty == 0 {
			continue
		}

		qty := decimal.NewFromInt(int64(line.Qty))
		subtotal = subtotal.Add(item.Price.Mul(qty))

		enhancement := "N/A"
		if item.CanEnhance {
			enhancement = "No"
			if line.Enhance {
				enhancement = "Yes"
				enhancementTotal = enhancementTotal.Add(menuEnhancementPrice.Mul(qty))
			}
		}
		lines = append(lines, lineOut{
			Label:       item.Label,
			Qty:         line.Qty,
			UnitPrice:   item.Price.InexactFloat64(),
			Enhancement: enhancement,
		})
	}

	total := subtotal.Add(enhancementTotal)
	if len(errs) == 0 && !total.IsPositive() {
		errs = append(errs, models.FieldError{Field: "lines", Message: "order at least one item"})
	}
	if len(errs) > 0 {
		return models.ValidOrder{}, errs
	}

	itemsJSON, _ := json.Marshal(lines)
	pricingJSON, _ := json.Marshal(map[string]float64{
		"subtotal":           subtotal.InexactFloat64(),
		"enhancementPerItem": menuEnhancementPrice.InexactFloat64(),
		"enhancementTotal":   enhancementTotal.InexactFloat64(),
		"total":              total.InexactFloat64(),
	})

	return models.ValidOrder{
		ProductType: models.ProductMenuOrder,
		ProductName: "After Dark Order",
		Amount:      total,
		Metadata: map[string]string{
			"type":         models.ProductMenuOrder,
			"contactEmail": d.ContactEmail,
			"contactPhone": utils.NormalizePhone(d.ContactPhone),
			"name":         d.Name,
			"items":        string(itemsJSON),
			"pricing":      string(pricingJSON),
			"policy":       menuPolicy,
		},
	}, nil
}

func findMenuItem(key string) (menuItem, bool) {
	for _, item := range menuCatalog {
		if item.Key == key {
			return item, true
		}
	}
	return menuItem{}, false
}
