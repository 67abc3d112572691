package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vishvpatel010/ai-quizzer/config"
	"gopkg.in/gomail.v2"
)

// MailService delivers the results email. Callers treat delivery as
// best-effort; a failure is logged and never fails the submission.
type MailService interface {
	SendResultEmail(to, subject string, score float64, suggestions string) error
}

type mailService struct {
	cfg *config.Config
}

func NewMailService(cfg *config.Config) MailService {
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST is not set. Result emails will not be delivered.")
	}
	return &mailService{cfg: cfg}
}

func (s *mailService) SendResultEmail(to, subject string, score float64, suggestions string) error {
	if s.cfg.SMTP.Host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	body := fmt.Sprintf(`
        <h1>Quiz Results</h1>
        <p><strong>Score:</strong> %g</p>
        <h2>Suggestions to Improve:</h2>
        <p>%s</p>
      `, score, suggestions)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.SMTP.Host, s.cfg.SMTP.Port, s.cfg.SMTP.User, s.cfg.SMTP.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
