// Package handler implements the voucher email handler: it decodes an invocation payload,
// validates it, composes the voucher email, makes a single delivery attempt and maps the
// outcome to a response. Every path returns a models.Response; nothing is returned as an error.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fallsafe/voucher-email/internal/event"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/fallsafe/voucher-email/internal/models"
	"github.com/fallsafe/voucher-email/internal/voucher"
	"github.com/pkg/errors"
)

const (
	MessageSent           = "Voucher email sent successfully"
	MessageInvalidInput   = "Invalid input format"
	MessageInvalidRequest = "Invalid email or voucher count"

	rejectedPrefix = "Email sending failed: "
	faultPrefix    = "Unexpected error: "

	maxLoggedDetail = 512
)

// Archiver stores a JSON document under key in bucket.
type Archiver interface {
	PutS3Object(ctx context.Context, key string, bucket string, body []byte) error
}

// Option configures a Handler.
type Option func(*Handler)

// Handler is the voucher email handler. It is safe for concurrent use.
type Handler struct {
	logger        *slog.Logger
	composer      *voucher.Composer
	sender        mailer.Sender
	archiver      Archiver
	archiveBucket string
	now           func() time.Time
}

// NewVoucherHandler creates a Handler. A composer and a sender are required.
func NewVoucherHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger: helpers.NewNoopLogger(),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.composer == nil {
		return nil, errors.New("missing voucher composer")
	}
	if _inst.sender == nil {
		return nil, errors.New("missing email sender")
	}
	if _inst.archiver != nil && _inst.archiveBucket == "" {
		return nil, errors.New("archive enabled without a bucket name")
	}
	return _inst, nil
}

// Handle processes a single invocation payload.
func (h *Handler) Handle(ctx context.Context, raw []byte) (response models.Response) {
	logger := h.logger
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic", slog.Any("panic", r))
			response = errorResponse(http.StatusInternalServerError, faultPrefix+fmt.Sprint(r))
		}
	}()

	logger.Info("processing request...")
	payload, err := event.Decode(raw)
	if err != nil {
		logger.Warn("failed to decode event", slog.Any("error", err))
		return errorResponse(http.StatusBadRequest, MessageInvalidInput)
	}

	req, err := voucher.Validate(payload)
	if err != nil {
		logger.Warn("invalid request", slog.Any("error", err))
		return errorResponse(http.StatusBadRequest, MessageInvalidRequest)
	}
	logger = logger.With(slog.Int("voucherCount", req.VoucherCount), slog.String("provider", h.sender.Name()))
	logger.Debug("request is valid", slog.String("email", req.Email))

	msg, err := h.composer.Compose(req)
	if err != nil {
		logger.Error("failed to compose email", slog.Any("error", err))
		return errorResponse(http.StatusInternalServerError, faultPrefix+err.Error())
	}

	result := h.sender.Send(ctx, msg)
	switch result.Kind {
	case mailer.KindRejected:
		logger.Warn("email rejected by provider", slog.String("detail", helpers.Truncate(result.Detail, maxLoggedDetail)))
		return errorResponse(http.StatusBadRequest, rejectedPrefix+result.Detail)
	case mailer.KindSent:
		logger.Info("voucher email sent", slog.String("messageId", result.MessageID))
		h.archive(ctx, logger, req, msg, result)
		return messageResponse(http.StatusOK, MessageSent)
	default:
		logger.Error("failed to send email", slog.String("kind", result.Kind.String()), slog.String("detail", helpers.Truncate(result.Detail, maxLoggedDetail)))
		return errorResponse(http.StatusInternalServerError, faultPrefix+result.Detail)
	}
}

func messageResponse(statusCode int, message string) models.Response {
	return newResponse(statusCode, "message", message)
}

func errorResponse(statusCode int, message string) models.Response {
	return newResponse(statusCode, "error", message)
}

func newResponse(statusCode int, key, value string) models.Response {
	// marshalling a map of strings cannot fail
	body, _ := json.Marshal(map[string]string{key: value})
	return models.Response{
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
		StatusCode: statusCode,
	}
}
