// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

// Runtime modes.
const (
	ModeLambda  = "lambda"
	ModeService = "service"
)

// Email providers.
const (
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
	ProviderMock   = "mock"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Email is a struct that contains the voucher email configuration.
	Email email
	// SES is a struct that contains the configuration for the SES provider.
	SES ses
	// Resend is a struct that contains the configuration for the Resend provider.
	Resend resend
	// SMTP is a struct that contains the configuration for the SMTP provider.
	SMTP smtp
	// Secrets is a struct that contains the configuration for provider secrets stored in SSM.
	Secrets secrets
	// Archive is a struct that contains the configuration for the S3 send archive.
	Archive archive
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"lambda"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
		Sentry      struct {
			DSN         string `yaml:"dsn,omitempty"`
			Environment string `yaml:"environment,omitempty" default:"production"`
		} `yaml:"sentry,omitempty"`
	} `yaml:"logging,omitempty"`
}

type email struct {
	// Provider selects the delivery provider: ses, resend, smtp or mock.
	Provider      string `yaml:"provider,omitempty" default:"ses"`
	SenderName    string `yaml:"senderName,omitempty" default:"FallSafe"`
	SenderAddress string `yaml:"senderAddress,omitempty"`
	Subject       string `yaml:"subject,omitempty" default:"Your NTUC Voucher"`
	ImageURL      string `yaml:"imageURL,omitempty" default:"https://fallsafe.s3.ap-southeast-1.amazonaws.com/misc/voucher.jpg"`
}

type ses struct {
	// ConfigurationSet is attached to every message when set.
	ConfigurationSet string `yaml:"configurationSet,omitempty"`
}

type resend struct {
	APIKey string `yaml:"apiKey,omitempty"`
}

type smtp struct {
	Host     string `yaml:"host,omitempty" default:"localhost"`
	Port     int    `yaml:"port,omitempty" default:"25"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

type secrets struct {
	// SSMKey names an SSM parameter holding provider secrets as JSON. Empty disables the lookup.
	SSMKey string `yaml:"ssmKey,omitempty"`
}

type archive struct {
	Enabled    bool   `yaml:"enabled,omitempty"`
	BucketName string `yaml:"bucketName,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v1"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Email),
		defaults.Set(&SES),
		defaults.Set(&Resend),
		defaults.Set(&SMTP),
		defaults.Set(&Secrets),
		defaults.Set(&Archive),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Email   email   `yaml:"email,omitempty"`
		SES     ses     `yaml:"ses,omitempty"`
		Resend  resend  `yaml:"resend,omitempty"`
		SMTP    smtp    `yaml:"smtp,omitempty"`
		Secrets secrets `yaml:"secrets,omitempty"`
		Archive archive `yaml:"archive,omitempty"`
		Service service `yaml:"service,omitempty"`
		Lambda  lambda  `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Email = a.Email
	SES = a.SES
	Resend = a.Resend
	SMTP = a.SMTP
	Secrets = a.Secrets
	Archive = a.Archive
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
