// Package email is the SMTP adapter. It speaks plain SMTP with optional SSL
// or STARTTLS and reports failures through the shared error taxonomy with
// the failing phase attached. Rendering message bodies is the caller's
// concern; the adapter takes finished HTML.
package email

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/config"
	log "github.com/elemental-io/elemental/pkg/logger"
)

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPSender is the production Sender. Connections are opened per send; the
// surrounding services send rarely enough that pooling is not worth it.
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

var _ Sender = (*SMTPSender)(nil)

// Send delivers one message. The failing SMTP phase decides the taxonomy
// mapping: unreachable server is a 503, refused sender a 403, refused
// recipients a validation failure, refused payload an internal fault.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = s.cfg.From
	}
	if err := msg.validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second

	client, err := s.connect(ctx, addr, timeout)
	if err != nil {
		log.WithError(err).WithField("smtp_host", s.cfg.Host).Error("smtp connection failed")
		return connectionError()
	}
	defer client.Close()

	if err := s.deliver(client, msg); err != nil {
		return err
	}

	if err := client.Quit(); err != nil {
		log.WithError(err).Warn("smtp quit failed")
	}
	return nil
}

func (s *SMTPSender) connect(ctx context.Context, addr string, timeout time.Duration) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}

	if s.cfg.UseSSL {
		conn = tls.Client(conn, &tls.Config{ServerName: s.cfg.Host})
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if s.cfg.UseTLS && !s.cfg.UseSSL {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func (s *SMTPSender) deliver(client *smtp.Client, msg *Message) error {
	if err := client.Mail(msg.From); err != nil {
		log.WithError(err).Error("smtp sender refused")
		return senderRefused()
	}

	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			log.WithError(err).WithField("recipient", rcpt).Error("smtp recipient refused")
			return recipientsRefused()
		}
	}

	w, err := client.Data()
	if err != nil {
		log.WithError(err).Error("smtp data refused")
		return dataRefused()
	}
	if _, err := w.Write(msg.bytes()); err != nil {
		_ = w.Close()
		log.WithError(err).Error("smtp payload write failed")
		return dataRefused()
	}
	if err := w.Close(); err != nil {
		log.WithError(err).Error("smtp data refused")
		return dataRefused()
	}
	return nil
}

func connectionError() error {
	return apperr.ExternalUnavailable("Email service is unreachable.").
		WithDetails("reason", "EMAIL_SERVICE_UNAVAILABLE")
}

func senderRefused() error {
	return apperr.Forbidden("Sender refused by mail server.").
		WithDetails("reason", "EMAIL_SENDER_REFUSED")
}

func recipientsRefused() error {
	return apperr.Validation("Recipients refused by mail server.").
		WithDetails("reason", "EMAIL_RECIPIENTS_REFUSED")
}

func dataRefused() error {
	return apperr.Internal("Email content refused by mail server.").
		WithDetails("reason", "EMAIL_DATA_ERROR")
}
