// Package ses implements mailer.Sender on top of Amazon SES.
package ses

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/pkg/errors"
)

const charset = "UTF-8"

// SendEmailAPI is the subset of the SES client used by the Sender.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender delivers messages through the SES SendEmail operation.
type Sender struct {
	client           SendEmailAPI
	logger           *slog.Logger
	configurationSet string
}

// Option configures a Sender.
type Option func(*Sender)

// WithLogger sets the logger used by the Sender.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// WithConfigurationSet attaches an SES configuration set to every message.
func WithConfigurationSet(name string) Option {
	return func(s *Sender) {
		s.configurationSet = name
	}
}

// New returns a Sender using the given SES client.
func New(client SendEmailAPI, opts ...Option) *Sender {
	_inst := &Sender{client: client}
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
	return "ses"
}

// Send implements mailer.Sender. A MessageRejected error is reported as a rejection, anything else as a fault.
func (s *Sender) Send(ctx context.Context, msg mailer.Message) mailer.Result {
	input := &ses.SendEmailInput{
		Source: aws.String(msg.From()),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)},
			},
		},
	}
	if s.configurationSet != "" {
		input.ConfigurationSetName = aws.String(s.configurationSet)
	}

	s.logger.Debug("sending email...", slog.String("to", msg.To))
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		var rejected *types.MessageRejected
		if errors.As(err, &rejected) {
			s.logger.Warn("message rejected", slog.Any("error", err))
			return mailer.Rejected(err.Error())
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("SES API error", slog.String("code", apiErr.ErrorCode()), slog.Any("error", err))
		} else {
			s.logger.Error("failed to send email", slog.Any("error", err))
		}
		return mailer.Fault(err.Error())
	}

	id := helpers.String(out.MessageId)
	s.logger.Info("email sent", slog.String("messageId", id))
	return mailer.Sent(id)
}
