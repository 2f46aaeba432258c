package handler

import (
	"log/slog"
	"time"

	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/fallsafe/voucher-email/internal/voucher"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithComposer sets the voucher message composer.
func WithComposer(composer *voucher.Composer) Option {
	return func(h *Handler) {
		h.composer = composer
	}
}

// WithSender sets the delivery provider.
func WithSender(sender mailer.Sender) Option {
	return func(h *Handler) {
		h.sender = sender
	}
}

// WithArchive enables archiving of sent emails to bucket.
func WithArchive(archiver Archiver, bucket string) Option {
	return func(h *Handler) {
		h.archiver = archiver
		h.archiveBucket = bucket
	}
}

// WithClock overrides the clock used for archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}
