package cmd

import (
	"time"

	"github.com/fallsafe/voucher-email/internal/config"
	"github.com/fallsafe/voucher-email/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'lambda' and 'service'",
		Short:       helpers.Ptr("m"),
	},
	&config.Global.Logging.Sentry.DSN: {
		Name:        "sentry-dsn",
		Description: "Forward warnings and errors to Sentry. Disabled when empty",
		Env:         helpers.Ptr("SENTRY_DSN"),
	},
	&config.Global.Logging.Sentry.Environment: {
		Name:        "sentry-environment",
		Description: "The Sentry environment to report events under",
		Env:         helpers.Ptr("SENTRY_ENVIRONMENT"),
	},
	&config.Email.Provider: {
		Name:        "email-provider",
		Description: "The email delivery provider. Supported values are 'ses', 'resend', 'smtp' and 'mock'",
	},
	&config.Email.SenderName: {
		Name:        "email-sender-name",
		Description: "The display name used in the From header and the email signature",
	},
	&config.Email.SenderAddress: {
		Name:        "email-sender-address",
		Description: "The address voucher emails are sent from (required)",
	},
	&config.Email.Subject: {
		Name:        "email-subject",
		Description: "The subject line of voucher emails",
	},
	&config.Email.ImageURL: {
		Name:        "voucher-image-url",
		Description: "The publicly hosted voucher image embedded in the email",
	},
	&config.SES.ConfigurationSet: {
		Name:        "ses-configuration-set",
		Description: "The SES configuration set attached to every message",
	},
	&config.Resend.APIKey: {
		Name:        "resend-api-key",
		Description: "The Resend API key",
		Hidden:      true,
	},
	&config.SMTP.Host: {
		Name:        "smtp-host",
		Description: "The SMTP relay host",
	},
	&config.SMTP.Username: {
		Name:        "smtp-username",
		Description: "The SMTP username. Authentication is skipped when empty",
	},
	&config.SMTP.Password: {
		Name:        "smtp-password",
		Description: "The SMTP password",
		Hidden:      true,
	},
	&config.Secrets.SSMKey: {
		Name:        "secrets-ssm-key",
		Description: "The SSM parameter holding provider secrets as JSON (resend_api_key, smtp_password)",
	},
	&config.Archive.BucketName: {
		Name:        "archive-s3-bucket",
		Description: "The S3 bucket to archive sent voucher emails to",
		Env:         helpers.Ptr("ARCHIVE_S3_BUCKET"),
	},
	&config.Lambda.PayloadType: {
		Name:        "lambda-payload-type",
		Description: "The payload type to expect when running in Lambda mode. Supported values are 'api-gateway-v1', 'api-gateway-v2' and 'lambda-url'",
	},
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the service on (default all interfaces in dual-stack serviceMode)",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the service on",
		Short:       helpers.Ptr("p"),
	},
	&config.Service.Path: {
		Name:        "service-host-path",
		Description: "The path to serve the service on",
		Short:       helpers.Ptr("P"),
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Archive.Enabled: {
		Name:        "archive-s3-upload",
		Description: "Enable archiving of sent voucher emails to S3",
		Env:         helpers.Ptr("ARCHIVE_S3_UPLOAD"),
	},
}

var envMapInt = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
		Count:       true,
	},
	&config.SMTP.Port: {
		Name:        "smtp-port",
		Description: "The SMTP relay port",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The timeout for I/O operations",
		Short:       helpers.Ptr("t"),
	},
}
