package mailer

import (
	"context"

	"github.com/sbilibin2017/timekeeper/internal/logger"
	mail "gopkg.in/mail.v2"
)

// Message is a plain-text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// SMTPMailer delivers messages over SMTP.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// New creates an SMTP mailer. Empty user and password disable SMTP auth.
func New(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: mail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers msg. It returns the transport error, if any.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.buildMessage(msg)); err != nil {
		logger.Log.Errorw("failed to send mail",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return err
	}

	logger.Log.Infow("mail sent",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

func (m *SMTPMailer) buildMessage(msg Message) *mail.Message {
	mm := mail.NewMessage()
	mm.SetHeader("From", m.from)
	mm.SetHeader("To", msg.To)
	mm.SetHeader("Subject", msg.Subject)
	mm.SetBody("text/plain", msg.Body)
	return mm
}
