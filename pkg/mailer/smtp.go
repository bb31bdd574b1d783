package mailer

import (
	"Doodly/config"
	"Doodly/pkg/log"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type Mailer interface {
	SendSignInCode(to, code string) error
}

type SmtpMailer struct {
	cfg *config.SmtpConfig
}

func NewSmtpMailer(cfg *config.SmtpConfig) Mailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) SendSignInCode(to, code string) error {
	subject := "Your Doodly sign-in code"
	body := fmt.Sprintf(`Hi!

Your sign-in code is:

    %s

It expires in 10 minutes. If you didn't request it, you can ignore this
email.

- The Doodly team
`, code)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(message)); err != nil {
		log.L.Error("send sign-in code failed", zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
