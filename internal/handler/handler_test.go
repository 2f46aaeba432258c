package handler_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fallsafe/voucher-email/internal/handler"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/fallsafe/voucher-email/internal/voucher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	mu    sync.Mutex
	err   error
	puts  map[string][]byte
	calls int
}

func (f *fakeArchiver) PutS3Object(_ context.Context, key string, bucket string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[bucket+"/"+key] = body
	return nil
}

func newHandler(t *testing.T, opts ...handler.Option) (*handler.Handler, *mailer.MockSender) {
	t.Helper()
	composer, err := voucher.NewComposer(
		voucher.WithSender("FallSafe", "vouchers@fallsafe.test"),
		voucher.WithSubject("Your NTUC Voucher"),
		voucher.WithImageURL("https://example.test/voucher.jpg"),
	)
	require.NoError(t, err)

	sender := mailer.NewMockSender()
	h, err := handler.NewVoucherHandler(append([]handler.Option{
		handler.WithComposer(composer),
		handler.WithSender(sender),
	}, opts...)...)
	require.NoError(t, err)
	return h, sender
}

func decodeBody(t *testing.T, body string) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.Len(t, out, 1)
	return out
}

func TestNewVoucherHandler(t *testing.T) {
	composer, err := voucher.NewComposer(voucher.WithSender("", "a@b.test"), voucher.WithSubject("s"))
	require.NoError(t, err)

	tests := []struct {
		Name    string
		Options []handler.Option
		Error   string
	}{
		{
			Name:    "missing composer",
			Options: []handler.Option{handler.WithSender(mailer.NewMockSender())},
			Error:   "missing voucher composer",
		},
		{
			Name:    "missing sender",
			Options: []handler.Option{handler.WithComposer(composer)},
			Error:   "missing email sender",
		},
		{
			Name: "archive without bucket",
			Options: []handler.Option{
				handler.WithComposer(composer),
				handler.WithSender(mailer.NewMockSender()),
				handler.WithArchive(&fakeArchiver{}, ""),
			},
			Error: "archive enabled without a bucket name",
		},
		{
			Name: "valid",
			Options: []handler.Option{
				handler.WithComposer(composer),
				handler.WithSender(mailer.NewMockSender()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			h, err := handler.NewVoucherHandler(tt.Options...)
			if tt.Error != "" {
				assert.EqualError(t, err, tt.Error)
				assert.Nil(t, h)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestHandle(t *testing.T) {
	gatewayBody := `{"email":"a@b.com","voucher_count":2}`

	tests := []struct {
		Name       string
		Event      string
		Result     *mailer.Result
		StatusCode int
		Key        string
		Contains   string
		Sent       int
	}{
		{
			Name:       "direct event",
			Event:      `{"email":"a@b.com","voucher_count":3}`,
			StatusCode: http.StatusOK,
			Key:        "message",
			Contains:   handler.MessageSent,
			Sent:       1,
		},
		{
			Name:       "gateway event",
			Event:      `{"body":` + jsonString(gatewayBody) + `}`,
			StatusCode: http.StatusOK,
			Key:        "message",
			Contains:   handler.MessageSent,
			Sent:       1,
		},
		{
			Name:       "base64 gateway event",
			Event:      `{"body":"` + base64.StdEncoding.EncodeToString([]byte(gatewayBody)) + `","isBase64Encoded":true}`,
			StatusCode: http.StatusOK,
			Key:        "message",
			Contains:   handler.MessageSent,
			Sent:       1,
		},
		{
			Name:       "extra fields ignored",
			Event:      `{"email":"a@b.com","voucher_count":1,"name":"x"}`,
			StatusCode: http.StatusOK,
			Key:        "message",
			Sent:       1,
		},
		{
			Name:       "invalid body json",
			Event:      `{"body":"{not json"}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidInput,
		},
		{
			Name:       "not an object",
			Event:      `[1,2]`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidInput,
		},
		{
			Name:       "null body",
			Event:      `{"body":null}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidInput,
		},
		{
			Name:       "zero vouchers",
			Event:      `{"email":"a@b.com","voucher_count":0}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "negative vouchers",
			Event:      `{"email":"a@b.com","voucher_count":-1}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "float vouchers",
			Event:      `{"email":"a@b.com","voucher_count":2.0}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "string vouchers",
			Event:      `{"email":"a@b.com","voucher_count":"2"}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "boolean vouchers",
			Event:      `{"email":"a@b.com","voucher_count":true}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "exponent vouchers",
			Event:      `{"email":"a@b.com","voucher_count":1e3}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "invalid count with empty email",
			Event:      `{"email":"","voucher_count":0}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "empty email",
			Event:      `{"email":"","voucher_count":2}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "missing email",
			Event:      `{"voucher_count":2}`,
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   handler.MessageInvalidRequest,
		},
		{
			Name:       "unformatted email accepted",
			Event:      `{"email":"not-an-address","voucher_count":2}`,
			StatusCode: http.StatusOK,
			Key:        "message",
			Sent:       1,
		},
		{
			Name:       "provider rejection",
			Event:      `{"email":"a@b.com","voucher_count":2}`,
			Result:     helpers.Ptr(mailer.Rejected("Email address is not verified.")),
			StatusCode: http.StatusBadRequest,
			Key:        "error",
			Contains:   "Email sending failed: Email address is not verified.",
			Sent:       1,
		},
		{
			Name:       "provider fault",
			Event:      `{"email":"a@b.com","voucher_count":2}`,
			Result:     helpers.Ptr(mailer.Fault("context deadline exceeded")),
			StatusCode: http.StatusInternalServerError,
			Key:        "error",
			Contains:   "Unexpected error: context deadline exceeded",
			Sent:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			h, sender := newHandler(t)
			if tt.Result != nil {
				sender.SetResult(*tt.Result)
			}

			resp := h.Handle(context.Background(), []byte(tt.Event))
			assert.Equal(t, tt.StatusCode, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])

			body := decodeBody(t, resp.Body)
			require.Contains(t, body, tt.Key)
			assert.Contains(t, body[tt.Key], tt.Contains)
			assert.Len(t, sender.Messages(), tt.Sent)
		})
	}
}

func TestHandleMessage(t *testing.T) {
	h, sender := newHandler(t)

	resp := h.Handle(context.Background(), []byte(`{"email":"a@b.com","voucher_count":4}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	messages := sender.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "a@b.com", messages[0].To)
	assert.Equal(t, "FallSafe <vouchers@fallsafe.test>", messages[0].From())
	assert.Equal(t, "Your NTUC Voucher", messages[0].Subject)
	assert.Contains(t, messages[0].HTML, "4")
	assert.Contains(t, messages[0].HTML, "https://example.test/voucher.jpg")
}

func TestHandleNotIdempotent(t *testing.T) {
	h, sender := newHandler(t)
	event := []byte(`{"email":"a@b.com","voucher_count":1}`)

	first := h.Handle(context.Background(), event)
	second := h.Handle(context.Background(), event)

	assert.Equal(t, first, second)
	assert.Len(t, sender.Messages(), 2)
}

func TestHandleArchive(t *testing.T) {
	sentAt := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	clock := func() time.Time { return sentAt }

	t.Run("stores record", func(t *testing.T) {
		archiver := &fakeArchiver{}
		h, sender := newHandler(t, handler.WithArchive(archiver, "bucket"), handler.WithClock(clock))
		sender.SetResult(mailer.Sent("msg-1"))

		resp := h.Handle(context.Background(), []byte(`{"email":"a@b.com","voucher_count":2}`))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, archiver.puts, 1)

		for key, body := range archiver.puts {
			assert.True(t, strings.HasPrefix(key, "bucket/vouchers/2026/03/04/"))
			assert.True(t, strings.HasSuffix(key, ".msg-1.json"))

			var record map[string]any
			require.NoError(t, json.Unmarshal(body, &record))
			assert.Equal(t, "msg-1", record["messageId"])
			assert.Equal(t, "mock", record["provider"])
			assert.Equal(t, "a@b.com", record["recipient"])
			assert.InDelta(t, 2, record["voucherCount"], 0)
			assert.Equal(t, "Your NTUC Voucher", record["subject"])
			assert.Equal(t, "2026-03-04T05:06:07Z", record["sentAt"])
		}
	})

	t.Run("failure keeps response", func(t *testing.T) {
		archiver := &fakeArchiver{err: errors.New("access denied")}
		h, _ := newHandler(t, handler.WithArchive(archiver, "bucket"), handler.WithClock(clock))

		resp := h.Handle(context.Background(), []byte(`{"email":"a@b.com","voucher_count":2}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, handler.MessageSent, decodeBody(t, resp.Body)["message"])
		assert.Equal(t, 1, archiver.calls)
	})

	t.Run("skipped when not sent", func(t *testing.T) {
		archiver := &fakeArchiver{}
		h, sender := newHandler(t, handler.WithArchive(archiver, "bucket"))
		sender.SetResult(mailer.Rejected("nope"))

		resp := h.Handle(context.Background(), []byte(`{"email":"a@b.com","voucher_count":2}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, archiver.calls)
	})
}

func jsonString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
