// Package smtp implements mailer.Sender over SMTP.
package smtp

import (
	"context"
	"log/slog"
	"net/textproto"

	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Dialer opens an SMTP session.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Sender delivers messages through an SMTP relay, one session per message.
type Sender struct {
	dialer Dialer
	logger *slog.Logger
}

// Option configures a Sender.
type Option func(*Sender)

// WithLogger sets the logger used by the Sender.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// WithDialer replaces the gomail dialer.
func WithDialer(d Dialer) Option {
	return func(s *Sender) {
		s.dialer = d
	}
}

// New creates a new SMTP sender.
func New(cfg Config, opts ...Option) *Sender {
	_inst := &Sender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("provider", _inst.Name())
	return _inst
}

// Name implements mailer.Sender.
func (s *Sender) Name() string {
	return "smtp"
}

// Send implements mailer.Sender. Permanent 550-554 replies are rejections, anything else is a fault.
func (s *Sender) Send(_ context.Context, msg mailer.Message) mailer.Result {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.FromAddress, msg.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	s.logger.Debug("dialing SMTP relay...")
	sc, err := s.dialer.Dial()
	if err != nil {
		s.logger.Error("failed to dial SMTP relay", slog.Any("error", err))
		return mailer.Fault(errors.Wrap(err, "failed to dial SMTP relay").Error())
	}
	defer func() {
		if closeErr := sc.Close(); closeErr != nil {
			s.logger.Warn("failed to close SMTP session", slog.Any("error", closeErr))
		}
	}()

	s.logger.Debug("sending email...", slog.String("to", msg.To))
	if err = sc.Send(msg.FromAddress, []string{msg.To}, m); err != nil {
		if isRejection(err) {
			s.logger.Warn("message rejected", slog.Any("error", err))
			return mailer.Rejected(err.Error())
		}
		s.logger.Error("failed to send email", slog.Any("error", err))
		return mailer.Fault(err.Error())
	}

	s.logger.Info("email sent")
	return mailer.Sent("")
}

func isRejection(err error) bool {
	var tpErr *textproto.Error
	if !errors.As(err, &tpErr) {
		return false
	}
	return tpErr.Code >= 550 && tpErr.Code <= 554
}
