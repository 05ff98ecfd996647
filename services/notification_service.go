package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/models"
	"github.com/vmackland-source/TGRoom/monitoring"
	"github.com/vmackland-source/TGRoom/sender"
	"github.com/vmackland-source/TGRoom/utils"
)

// NotificationService fans a completed payment out to the customer email,
// customer SMS and admin-copy channels. The three dispatches are independent:
// one broken channel never blocks the others, and per-channel failures are
// logged, counted and swallowed so the payment provider is not asked to
// retry failures it cannot fix.
type NotificationService struct {
	Email      sender.EmailSender
	SMS        sender.SMSSender
	AdminEmail string

	SocialAddress  string
	SocialCodeword string

	Logger *zap.Logger
}

func NewNotificationService(email sender.EmailSender, sms sender.SMSSender, adminEmail, socialAddress, socialCodeword string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		Email:          email,
		SMS:            sms,
		AdminEmail:     adminEmail,
		SocialAddress:  socialAddress,
		SocialCodeword: socialCodeword,
		Logger:         logger,
	}
}

// Dispatch renders the notification for a completed payment and issues all
// channel sends concurrently, returning once every attempt has finished.
// Stateless: re-delivering the same event repeats the same attempts and
// mutates nothing else.
func (s *NotificationService) Dispatch(ctx context.Context, p models.CompletedPayment) {
	n := s.Render(p)

	contactEmail := p.Metadata["contactEmail"]
	if contactEmail == "" {
		contactEmail = p.Metadata["email"]
	}
	contactPhone := utils.NormalizePhone(p.Metadata["contactPhone"])

	var wg sync.WaitGroup

	if contactEmail != "" && s.Email != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Email.SendEmail(ctx, contactEmail, n.Subject, n.HTML); err != nil {
				monitoring.NotificationAttempts.WithLabelValues("email", "error").Inc()
				s.Logger.Error("customer email failed",
					zap.String("event_id", p.EventID),
					zap.Error(err),
				)
				return
			}
			monitoring.NotificationAttempts.WithLabelValues("email", "ok").Inc()
		}()
	}

	if contactPhone != "" && s.SMS != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.SMS.SendSMS(ctx, contactPhone, n.SMS); err != nil {
				monitoring.NotificationAttempts.WithLabelValues("sms", "error").Inc()
				s.Logger.Error("customer SMS failed",
					zap.String("event_id", p.EventID),
					zap.Error(err),
				)
				return
			}
			monitoring.NotificationAttempts.WithLabelValues("sms", "ok").Inc()
		}()
	}

	if s.AdminEmail != "" && s.Email != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admin := renderAdminCopy(p, n)
			if _, err := s.Email.SendEmail(ctx, s.AdminEmail, admin.Subject, admin.HTML); err != nil {
				monitoring.NotificationAttempts.WithLabelValues("admin", "error").Inc()
				s.Logger.Error("admin copy failed",
					zap.String("event_id", p.EventID),
					zap.Error(err),
				)
				return
			}
			monitoring.NotificationAttempts.WithLabelValues("admin", "ok").Inc()
		}()
	}

	wg.Wait()
}
