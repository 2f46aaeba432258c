package cmd

import (
	"context"
	"strings"

	"github.com/fallsafe/voucher-email/internal/config"
	awsctl "github.com/fallsafe/voucher-email/internal/controllers/aws"
	"github.com/fallsafe/voucher-email/internal/handler"
	sessender "github.com/fallsafe/voucher-email/internal/mailer/ses"
	smtpsender "github.com/fallsafe/voucher-email/internal/mailer/smtp"
	"github.com/fallsafe/voucher-email/internal/runtime"
	"github.com/fallsafe/voucher-email/internal/voucher"
	"github.com/pkg/errors"
)

// setup wires the voucher handler from the loaded configuration.
func setup(ctx context.Context) (*runtime.Runtime, error) {
	config.Email.Provider = strings.ToLower(strings.TrimSpace(config.Email.Provider))

	var controller *awsctl.Controller
	if config.Email.Provider == config.ProviderSES || config.Secrets.SSMKey != "" || config.Archive.Enabled {
		logger.Debug("creating AWS controller...")
		var err error
		controller, err = awsctl.NewController(
			awsctl.WithContext(ctx),
			awsctl.WithLogger(logger.With("component", "aws-controller")))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
	}

	if config.Secrets.SSMKey != "" {
		logger.Debug("retrieving provider secrets...", "key", config.Secrets.SSMKey)
		secrets, err := controller.RetrieveProviderSecrets(config.Secrets.SSMKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to retrieve provider secrets")
		}
		if secrets.ResendAPIKey != "" {
			config.Resend.APIKey = secrets.ResendAPIKey
		}
		if secrets.SMTPPassword != "" {
			config.SMTP.Password = secrets.SMTPPassword
		}
	}

	var sesClient sessender.SendEmailAPI
	if config.Email.Provider == config.ProviderSES {
		sesClient = controller.SES()
	}

	logger.Debug("creating email sender...", "provider", config.Email.Provider)
	sender, err := handler.NewSender(handler.SenderConfig{
		Provider:            config.Email.Provider,
		SESConfigurationSet: config.SES.ConfigurationSet,
		ResendAPIKey:        config.Resend.APIKey,
		SMTP: smtpsender.Config{
			Host:     config.SMTP.Host,
			Port:     config.SMTP.Port,
			Username: config.SMTP.Username,
			Password: config.SMTP.Password,
		},
	}, sesClient, logger.With("component", "mailer"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create email sender")
	}

	composer, err := voucher.NewComposer(
		voucher.WithSender(config.Email.SenderName, config.Email.SenderAddress),
		voucher.WithSubject(config.Email.Subject),
		voucher.WithImageURL(config.Email.ImageURL))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create voucher composer")
	}

	opts := []handler.Option{
		handler.WithComposer(composer),
		handler.WithSender(sender),
		handler.WithLogger(logger.With("component", "handler")),
	}
	if config.Archive.Enabled {
		opts = append(opts, handler.WithArchive(controller, config.Archive.BucketName))
	}

	logger.Debug("creating voucher handler...")
	hdl, err := handler.NewVoucherHandler(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create voucher handler")
	}

	logger.Debug("creating runtime...")
	return runtime.NewRuntime(hdl,
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithPayloadType(config.Lambda.PayloadType),
		runtime.WithFlush(flushLogs)), nil
}
