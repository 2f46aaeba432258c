// Package voucher validates voucher requests and composes the voucher email.
package voucher

import (
	"bytes"
	"html/template"

	"github.com/fallsafe/voucher-email/internal/mailer"
	"github.com/fallsafe/voucher-email/internal/models"
	"github.com/pkg/errors"

	_ "embed"
)

//go:embed templates/voucher.html.tmpl
var voucherTemplate string

// Composer builds voucher messages from a fixed sender identity, subject and image URL.
type Composer struct {
	tmpl          *template.Template
	senderName    string
	senderAddress string
	subject       string
	imageURL      string
}

// Option configures a Composer.
type Option func(*Composer)

// WithSender sets the sender display name and address.
func WithSender(name, address string) Option {
	return func(c *Composer) {
		c.senderName = name
		c.senderAddress = address
	}
}

// WithSubject sets the subject line.
func WithSubject(subject string) Option {
	return func(c *Composer) {
		c.subject = subject
	}
}

// WithImageURL sets the publicly hosted voucher image.
func WithImageURL(url string) Option {
	return func(c *Composer) {
		c.imageURL = url
	}
}

// NewComposer parses the embedded template and returns a Composer.
// A sender address and a subject are required.
func NewComposer(opts ...Option) (*Composer, error) {
	_inst := &Composer{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.senderAddress == "" {
		return nil, errors.New("missing sender address")
	}
	if _inst.subject == "" {
		return nil, errors.New("missing subject")
	}

	tmpl, err := template.New("voucher").Parse(voucherTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse voucher template")
	}
	_inst.tmpl = tmpl
	return _inst, nil
}

type templateData struct {
	VoucherCount int
	ImageURL     string
	SenderName   string
}

// Compose renders the message for a validated request.
func (c *Composer) Compose(req models.Request) (mailer.Message, error) {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, templateData{
		VoucherCount: req.VoucherCount,
		ImageURL:     c.imageURL,
		SenderName:   c.senderName,
	}); err != nil {
		return mailer.Message{}, errors.Wrap(err, "failed to render voucher email")
	}

	return mailer.Message{
		FromName:    c.senderName,
		FromAddress: c.senderAddress,
		To:          req.Email,
		Subject:     c.subject,
		HTML:        buf.String(),
	}, nil
}
