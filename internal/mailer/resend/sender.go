// Package resend implements mailer.Sender using the Resend API.
package resend

import (
	"context"
	"log/slog"

	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/resend/resend-go/v3"
)

// SendFunc submits a single email request to Resend.
type SendFunc func(ctx context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error)

// Sender delivers messages through Resend. Resend exposes no typed rejection, so every error is a fault.
type Sender struct {
	send   SendFunc
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

// WithSendFunc replaces the Resend client call.
func WithSendFunc(fn SendFunc) Option {
	return func(s *Sender) {
		s.send = fn
	}
}

// New creates a new Resend sender authenticated with apiKey.
func New(apiKey string, opts ...Option) *Sender {
	client := resend.NewClient(apiKey)
	_inst := &Sender{
		send: func(ctx context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
			return client.Emails.SendWithContext(ctx, req)
		},
	}
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
	return "resend"
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, msg mailer.Message) mailer.Result {
	req := &resend.SendEmailRequest{
		From:    msg.From(),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	s.logger.Debug("sending email...", slog.String("to", msg.To))
	resp, err := s.send(ctx, req)
	if err != nil {
		s.logger.Error("failed to send email", slog.Any("error", err))
		return mailer.Fault(err.Error())
	}

	var id string
	if resp != nil {
		id = resp.Id
	}
	s.logger.Info("email sent", slog.String("messageId", id))
	return mailer.Sent(id)
}
