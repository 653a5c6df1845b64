package mailer

import (
	"context"
	"fmt"

	"lesson-planner/internal/config"
	"lesson-planner/internal/logger"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const resetSubject = "Your password reset code"

type Mailer interface {
	SendResetCode(ctx context.Context, to, username, code string) error
}

// New returns an SMTP mailer when a host is configured and a log mailer otherwise.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}

type sendFunc func(ctx context.Context, msg *mail.Msg) error

type SMTPMailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, to, username, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.resetMessage(to, username, code)
	if err != nil {
		return fmt.Errorf("failed to build reset message: %w", err)
	}

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}

	logger.Info("Reset code sent",
		zap.String("event", "password_reset_code_sent"),
		zap.String("to", to),
	)
	return nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

func (m *SMTPMailer) resetMessage(to, username, code string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(resetSubject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\r\n\r\nYour password reset code is: %s\r\nThe code expires in one hour.\r\n",
		username, code,
	))
	return msg, nil
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogMailer writes reset codes to the application log. Intended for local development.
type LogMailer struct{}

func (LogMailer) SendResetCode(_ context.Context, to, username, code string) error {
	logger.Info("Reset code issued",
		zap.String("event", "password_reset_code_issued"),
		zap.String("to", to),
		zap.String("username", username),
		zap.String("code", code),
	)
	return nil
}
