// Package aws provides the Controller struct that wraps AWS services: SES for delivery, SSM for
// provider secrets and S3 for the send archive.
package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go/logging"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/pkg/errors"
)

// S3API is the subset of the S3 client used by the Controller.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SSMAPI is the subset of the SSM client used by the Controller.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Controller represents a wrapper for AWS services with context and logging support.
type Controller struct {
	ctx    context.Context
	logger *slog.Logger

	config    *aws.Config
	s3Client  S3API
	ssmClient SSMAPI
	sesClient *ses.Client
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// ProviderSecrets holds delivery provider credentials stored as a JSON SSM parameter.
type ProviderSecrets struct {
	ResendAPIKey string `json:"resend_api_key,omitempty"`
	SMTPPassword string `json:"smtp_password,omitempty"`
}

// NewController initializes a Controller with customizable options and default configurations if unspecified.
// Clients injected through options are kept; the others are built from the AWS configuration.
func NewController(opts ...Option) (*Controller, error) {
	_inst := &Controller{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "aws")
	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.config == nil {
		_inst.logger.Debug("loading default AWS configuration...")
		cfg, err := config.LoadDefaultConfig(_inst.ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS configuration")
		}
		cfg.Logger = newAWSLogger(_inst.logger)
		_inst.config = &cfg
	}

	if _inst.s3Client == nil {
		_inst.s3Client = s3.NewFromConfig(*_inst.config)
	}
	if _inst.ssmClient == nil {
		_inst.ssmClient = ssm.NewFromConfig(*_inst.config)
	}
	_inst.sesClient = ses.NewFromConfig(*_inst.config)
	return _inst, nil
}

// SES returns the SES client built from the controller configuration.
func (a *Controller) SES() *ses.Client {
	return a.sesClient
}

// GetSecret retrieves a secret value from SSM Parameter Store using the provided key.
// If encrypted is true, the secret is returned decrypted.
func (a *Controller) GetSecret(key string, encrypted bool) (*string, error) {
	a.logger.With("key", key).Debug("fetching SSM secret...")
	ssmResponse, err := a.ssmClient.GetParameter(a.ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(encrypted),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load SSM parameters")
	}
	if ssmResponse.Parameter == nil {
		return nil, errors.Errorf("SSM parameter %s has no value", key)
	}
	return ssmResponse.Parameter.Value, nil
}

// RetrieveProviderSecrets fetches and decodes the provider secrets stored under key.
func (a *Controller) RetrieveProviderSecrets(key string) (*ProviderSecrets, error) {
	secret, err := a.GetSecret(key, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch provider secrets from SSM")
	}
	var out ProviderSecrets
	if err = json.Unmarshal([]byte(helpers.String(secret)), &out); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal provider secrets")
	}
	return &out, nil
}

// PutS3Object uploads a JSON object to the specified S3 bucket under key.
// An empty bucket name is a no-op.
func (a *Controller) PutS3Object(ctx context.Context, key string, bucket string, body []byte) error {
	if bucket == "" {
		return nil
	}
	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to put object to S3")
	}
	return nil
}

type awsLogger struct {
	logger *slog.Logger
}

func newAWSLogger(logger *slog.Logger) *awsLogger {
	return &awsLogger{logger}
}

func (a *awsLogger) Logf(classification logging.Classification, format string, args ...any) {
	a.logger.Debug(fmt.Sprintf("[%v] %s", classification, fmt.Sprintf(format, args...)))
}
