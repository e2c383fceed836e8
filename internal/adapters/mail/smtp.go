package mail

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends HTML email through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	dial func(m *gomail.Message) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	mm := &SMTPMailer{cfg: cfg}
	mm.dial = func(m *gomail.Message) error {
		return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password).DialAndSend(m)
	}
	return mm
}

func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.Configured() {
		return errors.New("smtp no configurado")
	}
	if to == "" {
		return errors.New("destinatario vacío")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dial(msg)
}
