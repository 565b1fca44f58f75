// Package mail implementa ports.Mailer.
package mail

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
	"github.com/jhoicas/Practicas-api/pkg/config"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// New elige el adaptador según Driver ("smtp" o "log").
func New(cfg config.MailConfig, log *logger.Logger) (ports.Mailer, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTP(cfg), nil
	case "", "log":
		return NewLogMailer(log), nil
	}
	return nil, fmt.Errorf("mail: driver desconocido %q", cfg.Driver)
}

// Dialer abstrae gomail.Dialer para pruebas.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTP envía por SMTP con gomail. Abre una conexión por mensaje.
type SMTP struct {
	dialer Dialer
	from   string
}

var _ ports.Mailer = (*SMTP)(nil)

// NewSMTP usa STARTTLS cuando el servidor lo ofrece.
func NewSMTP(cfg config.MailConfig) *SMTP {
	return &SMTP{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), from: cfg.From}
}

// NewSMTPWithDialer permite inyectar el dialer.
func NewSMTPWithDialer(d Dialer, from string) *SMTP {
	return &SMTP{dialer: d, from: from}
}

func (s *SMTP) Send(ctx context.Context, msg ports.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (s *SMTP) build(msg ports.MailMessage) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("mail: sin destinatarios")
	}
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m, nil
}

// LogMailer solo registra el correo; para desarrollo.
type LogMailer struct {
	log *logger.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

func NewLogMailer(log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &LogMailer{log: log.Component("mail")}
}

func (l *LogMailer) Send(_ context.Context, msg ports.MailMessage) error {
	l.log.Info().
		Str("to", strings.Join(msg.To, ",")).
		Str("subject", msg.Subject).
		Int("bytes", len(msg.TextBody)).
		Msg("correo (driver log)")
	return nil
}
