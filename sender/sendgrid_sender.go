package sender

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
}

func NewSendGridSender(apiKey, fromEmail string) (*SendGridSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY not set")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("SENDGRID_FROM_EMAIL not set")
	}

	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
	}, nil
}

func (s *SendGridSender) SendEmail(ctx context.Context, to, subject, htmlBody string) (SendResult, error) {
	from := mail.NewEmail("The Green Room", s.fromEmail)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return SendResult{}, fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return SendResult{}, fmt.Errorf("sendgrid error %d: %s", resp.StatusCode, resp.Body)
	}

	messageID := resp.Headers["X-Message-Id"]
	id := ""
	if len(messageID) > 0 {
		id = messageID[0]
	}
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
