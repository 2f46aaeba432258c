// Package mailer defines the email delivery capability used by the voucher handler.
//
// Providers never return errors to their callers. Every delivery attempt is reported as a Result
// that is either Sent, Rejected (the provider refused the message itself) or Fault (anything else:
// transport errors, throttling, misconfiguration). Classification happens inside each provider.
package mailer

import (
	"context"
	"fmt"
)

// Sender delivers a single, fully-prepared message.
type Sender interface {
	// Name returns the provider name, used in logs and archive records.
	Name() string
	// Send makes exactly one delivery attempt.
	Send(ctx context.Context, msg Message) Result
}

// Message is an HTML email addressed to a single recipient.
type Message struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	HTML        string
}

// From returns the sender in "Name <address>" form, or the bare address when no name is set.
func (m Message) From() string {
	return Recipient(m.FromName, m.FromAddress)
}

// Recipient formats a name and email address into RFC 5322 address form.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
