package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/fallsafe/voucher-email/internal/models"
)

type archiveRecord struct {
	MessageID    string    `json:"messageId,omitempty"`
	Provider     string    `json:"provider"`
	Recipient    string    `json:"recipient"`
	VoucherCount int       `json:"voucherCount"`
	Subject      string    `json:"subject"`
	SentAt       time.Time `json:"sentAt"`
}

// archive stores a record of a sent voucher email. Failures are logged and otherwise ignored.
func (h *Handler) archive(ctx context.Context, logger *slog.Logger, req models.Request, msg mailer.Message, result mailer.Result) {
	if h.archiver == nil {
		return
	}

	record := archiveRecord{
		MessageID:    result.MessageID,
		Provider:     h.sender.Name(),
		Recipient:    req.Email,
		VoucherCount: req.VoucherCount,
		Subject:      msg.Subject,
		SentAt:       h.now().UTC(),
	}
	body, err := json.Marshal(record)
	if err != nil {
		logger.Warn("failed to marshal archive record", slog.Any("error", err))
		return
	}

	if err = h.archiver.PutS3Object(ctx, archiveKey(record), h.archiveBucket, body); err != nil {
		logger.Warn("failed to archive voucher email", slog.Any("error", err))
		return
	}
	logger.Debug("voucher email archived", slog.String("bucket", h.archiveBucket))
}

func archiveKey(r archiveRecord) string {
	id := r.MessageID
	if id == "" {
		id = r.Provider
	}
	return fmt.Sprintf("vouchers/%s/%s.%s.json", r.SentAt.Format("2006/01/02"), r.SentAt.Format(time.RFC3339Nano), id)
}
