package mailer

// Kind classifies the outcome of a delivery attempt.
type Kind int

const (
	// KindSent means the provider accepted the message.
	KindSent Kind = iota
	// KindRejected means the provider refused the message itself.
	KindRejected
	// KindFault covers every other failure.
	KindFault
)

func (k Kind) String() string {
	switch k {
	case KindSent:
		return "sent"
	case KindRejected:
		return "rejected"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single delivery attempt.
type Result struct {
	Kind Kind
	// MessageID is the provider-assigned identifier, when the provider returns one.
	MessageID string
	// Detail describes a rejection or a fault.
	Detail string
}

// Sent returns a successful Result.
func Sent(messageID string) Result {
	return Result{Kind: KindSent, MessageID: messageID}
}

// Rejected returns a Result for a message refused by the provider.
func Rejected(detail string) Result {
	return Result{Kind: KindRejected, Detail: detail}
}

// Fault returns a Result for any failure other than a rejection.
func Fault(detail string) Result {
	return Result{Kind: KindFault, Detail: detail}
}
