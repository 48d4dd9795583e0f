package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"carehome-backend/internal/config"
	"carehome-backend/internal/domain"
)

type Service interface {
	SendCriticalAlertEmail(ctx context.Context, alert *domain.Alert, residentName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

// SendCriticalAlertEmail escalates a critical alert to the configured care
// manager address. A missing escalation address disables escalation.
func (s *service) SendCriticalAlertEmail(ctx context.Context, alert *domain.Alert, residentName string) error {
	if s.config.EscalationEmail == "" {
		return nil
	}

	period := ""
	if alert.TimePeriod != nil {
		period = fmt.Sprintf(" (%s)", *alert.TimePeriod)
	}

	body := fmt.Sprintf(
		"<h2>%s</h2><p>%s</p><p>Resident: %s%s</p><p>Raised at: %s</p>",
		alert.Title, alert.Message, residentName, period,
		alert.Timestamp.Format("2006-01-02 15:04"),
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Care Alerts <%s>", s.config.FromEmail),
		To:      []string{s.config.EscalationEmail},
		Html:    body,
		Subject: fmt.Sprintf("Critical alert: %s", alert.Title),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
