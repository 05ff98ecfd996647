package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmackland-source/TGRoom/models"
)

const metaBlockStyle = "white-space:pre-wrap;background:#111;padding:10px;border-radius:6px;color:#eee"

// Render selects a notification template by product type and fills it from
// event metadata. Fields absent from metadata degrade gracefully: their
// conditional blocks are omitted, never an error.
func (s *NotificationService) Render(p models.CompletedPayment) models.Notification {
	amount := p.Amount().StringFixed(2)
	meta := p.Metadata

	switch p.ProductType() {
	case models.ProductReservation:
		return renderReservation(meta, amount)
	case models.ProductSocialEntry:
		return s.renderSocialEntry(meta)
	case models.ProductMenuOrder:
		return renderMenuOrder(meta, amount)
	case models.ProductMembership:
		return renderMembership()
	default:
		return models.Notification{
			Subject: "Payment received",
			HTML:    fmt.Sprintf("<p>We received your payment of $%s.</p>", amount),
			SMS:     fmt.Sprintf("Thanks! Payment received: $%s.", amount),
		}
	}
}

func renderReservation(meta map[string]string, amount string) models.Notification {
	var b strings.Builder
	b.WriteString("<h2>Reservation Confirmed</h2>\n")
	memberNote := ""
	if meta["isMember"] == "true" {
		memberNote = " (member discount applied)"
	}
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s<br/><strong>Time:</strong> %s<br/><strong>Party:</strong> %s%s</p>\n",
		meta["date"], meta["time"], meta["partySize"], memberNote)
	if policy := meta["policy"]; policy != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", policy)
	}
	if notes := meta["notes"]; notes != "" {
		fmt.Fprintf(&b, "<pre style=%q>%s</pre>\n", metaBlockStyle, notes)
	}

	return models.Notification{
		Subject: "Your Cafe Reservation is Confirmed",
		HTML:    b.String(),
		SMS: fmt.Sprintf("Reservation confirmed: %s %s, party %s. Check email for details.",
			meta["date"], meta["time"], meta["partySize"]),
	}
}

func (s *NotificationService) renderSocialEntry(meta map[string]string) models.Notification {
	var b strings.Builder
	b.WriteString("<h2>Entry Confirmed</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Address:</strong> %s<br/><strong>Codeword:</strong> %s<br/><strong>Hours:</strong> Friday &amp; Saturday, 11 PM - 3 AM</p>\n",
		s.SocialAddress, s.SocialCodeword)
	b.WriteString("<p>Have your QR code ready to be scanned. IDs checked on arrival. No outside food or drink. Zero tolerance for violence/theft/damage (permanent ban).</p>\n")
	if note := meta["qrSystemNote"]; note != "" {
		fmt.Fprintf(&b, "<pre style=%q>%s</pre>\n", metaBlockStyle, note)
	}

	return models.Notification{
		Subject: "Social After Dark - Address & Codeword",
		HTML:    b.String(),
		SMS: fmt.Sprintf("Social Entry confirmed. Address: %s. Codeword: %s. Hours Fri & Sat 11PM-3AM. Have your QR ready.",
			s.SocialAddress, s.SocialCodeword),
	}
}

func renderMenuOrder(meta map[string]string, amount string) models.Notification {
	var b strings.Builder
	b.WriteString("<h2>Order Confirmed</h2>\n")
	fmt.Fprintf(&b, "<p>Total: <strong>$%s</strong></p>\n", amount)
	if items := meta["items"]; items != "" {
		fmt.Fprintf(&b, "<pre style=%q>%s</pre>\n", metaBlockStyle, items)
	}
	if policy := meta["policy"]; policy != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", policy)
	}

	return models.Notification{
		Subject: "Order Received - After Dark Menu",
		HTML:    b.String(),
		SMS:     fmt.Sprintf("Thanks! Your order was received. Total $%s. Check email for details.", amount),
	}
}

func renderMembership() models.Notification {
	return models.Notification{
		Subject: "Membership Payment Received",
		HTML: "<h2>Membership Submitted</h2>\n" +
			"<p>We received your membership details and payment. We'll review your photo/ID match and issue your unique QR code (save it to your phone).</p>\n",
		SMS: "Membership received. You'll get your QR code shortly.",
	}
}

// renderAdminCopy builds the operator copy: amount plus the full metadata bag
// pretty-printed, so the admin inbox doubles as the order log.
func renderAdminCopy(p models.CompletedPayment, n models.Notification) models.Notification {
	pretty, _ := json.MarshalIndent(p.Metadata, "", "  ")
	return models.Notification{
		Subject: "[Admin] " + n.Subject,
		HTML: fmt.Sprintf("<p>Amount: $%s</p>\n<pre style=%q>%s</pre>\n",
			p.Amount().StringFixed(2), metaBlockStyle, string(pretty)),
	}
}
