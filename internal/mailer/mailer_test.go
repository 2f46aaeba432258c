package mailer_test

import (
	"context"
	"testing"

	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFrom(t *testing.T) {
	testCases := []struct {
		Name     string
		Message  mailer.Message
		Expected string
	}{
		{
			Name:     "with_name",
			Message:  mailer.Message{FromName: "FallSafe", FromAddress: "noreply@example.com"},
			Expected: "FallSafe <noreply@example.com>",
		},
		{
			Name:     "without_name",
			Message:  mailer.Message{FromAddress: "noreply@example.com"},
			Expected: "noreply@example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Message.From())
		})
	}
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, mailer.Result{Kind: mailer.KindSent, MessageID: "id"}, mailer.Sent("id"))
	assert.Equal(t, mailer.Result{Kind: mailer.KindRejected, Detail: "nope"}, mailer.Rejected("nope"))
	assert.Equal(t, mailer.Result{Kind: mailer.KindFault, Detail: "boom"}, mailer.Fault("boom"))
	assert.Equal(t, "rejected", mailer.KindRejected.String())
	assert.Equal(t, "unknown", mailer.Kind(42).String())
}

func TestMockSender(t *testing.T) {
	mock := mailer.NewMockSender()
	ctx := context.Background()

	res := mock.Send(ctx, mailer.Message{To: "a@b.com"})
	assert.Equal(t, mailer.KindSent, res.Kind)

	mock.SetResult(mailer.Rejected("blocked"))
	res = mock.Send(ctx, mailer.Message{To: "c@d.com"})
	assert.Equal(t, mailer.KindRejected, res.Kind)
	require.Len(t, mock.Messages(), 2)
	assert.Equal(t, "c@d.com", mock.Messages()[1].To)

	mock.Reset()
	assert.Empty(t, mock.Messages())
	assert.Equal(t, mailer.KindSent, mock.Send(ctx, mailer.Message{}).Kind)
}
