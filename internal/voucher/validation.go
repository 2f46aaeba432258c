package voucher

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/fallsafe/voucher-email/internal/event"
	"github.com/fallsafe/voucher-email/internal/models"
	"github.com/pkg/errors"
)

const (
	emailKey        = "email"
	voucherCountKey = "voucher_count"
)

// ErrInvalidRequest is returned when the email or the voucher count is missing or invalid.
var ErrInvalidRequest = errors.New("invalid email or voucher count")

// Validate extracts a models.Request from the payload.
// The email must be a non-empty string; no address syntax check is performed.
// The voucher count must be a JSON integer literal greater than zero.
func Validate(payload event.Payload) (models.Request, error) {
	email, err := extractEmail(payload[emailKey])
	if err != nil {
		return models.Request{}, err
	}
	count, err := extractVoucherCount(payload[voucherCountKey])
	if err != nil {
		return models.Request{}, err
	}
	return models.Request{Email: email, VoucherCount: count}, nil
}

func extractEmail(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.Wrap(ErrInvalidRequest, "missing email")
	}
	var email string
	if err := json.Unmarshal(raw, &email); err != nil {
		return "", errors.Wrap(ErrInvalidRequest, "email is not a string")
	}
	if email == "" {
		return "", errors.Wrap(ErrInvalidRequest, "empty email")
	}
	return email, nil
}

func extractVoucherCount(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.Wrap(ErrInvalidRequest, "missing voucher_count")
	}
	// ParseInt refuses fractions, exponents, quoted strings, booleans and null.
	count, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 0)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidRequest, "voucher_count %s is not an integer", raw)
	}
	if count <= 0 {
		return 0, errors.Wrapf(ErrInvalidRequest, "voucher_count %d is not positive", count)
	}
	return int(count), nil
}
