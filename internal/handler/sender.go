package handler

import (
	"log/slog"
	"strings"

	"github.com/fallsafe/voucher-email/internal/config"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	resendsender "github.com/fallsafe/voucher-email/internal/mailer/resend"
	sessender "github.com/fallsafe/voucher-email/internal/mailer/ses"
	smtpsender "github.com/fallsafe/voucher-email/internal/mailer/smtp"
)

// SenderConfig selects and configures a delivery provider.
type SenderConfig struct {
	Provider            string
	SESConfigurationSet string
	ResendAPIKey        string
	SMTP                smtpsender.Config
}

// NewSender builds the delivery provider named by cfg.Provider. The SES client is only
// required for the ses provider.
func NewSender(cfg SenderConfig, sesClient sessender.SendEmailAPI, logger *slog.Logger) (mailer.Sender, error) {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}

	switch strings.TrimSpace(strings.ToLower(cfg.Provider)) {
	case config.ProviderSES:
		if sesClient == nil {
			return nil, &MissingCredentialsError{Provider: config.ProviderSES, Setting: "SES client"}
		}
		return sessender.New(sesClient,
			sessender.WithConfigurationSet(cfg.SESConfigurationSet),
			sessender.WithLogger(logger)), nil
	case config.ProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, &MissingCredentialsError{Provider: config.ProviderResend, Setting: "API key"}
		}
		return resendsender.New(cfg.ResendAPIKey, resendsender.WithLogger(logger)), nil
	case config.ProviderSMTP:
		if cfg.SMTP.Host == "" {
			return nil, &MissingCredentialsError{Provider: config.ProviderSMTP, Setting: "host"}
		}
		return smtpsender.New(cfg.SMTP, smtpsender.WithLogger(logger)), nil
	case config.ProviderMock:
		logger.Warn("using the mock email provider: no email will be delivered")
		return mailer.NewMockSender(), nil
	default:
		return nil, &UnsupportedProviderError{Provider: cfg.Provider}
	}
}
