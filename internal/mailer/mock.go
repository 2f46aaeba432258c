package mailer

import (
	"context"
	"sync"
)

// MockSender records messages in memory and answers with a scripted Result.
type MockSender struct {
	mu       sync.Mutex
	messages []Message
	result   Result
}

// NewMockSender returns a MockSender that reports every message as sent.
func NewMockSender() *MockSender {
	return &MockSender{result: Sent("mock")}
}

// Name implements Sender.
func (m *MockSender) Name() string {
	return "mock"
}

// Send implements Sender.
func (m *MockSender) Send(_ context.Context, msg Message) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	return m.result
}

// Messages returns a copy of every message received so far.
func (m *MockSender) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// SetResult sets the Result returned by subsequent calls to Send.
func (m *MockSender) SetResult(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.result = result
}

// Reset clears recorded messages and restores the default Result.
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = nil
	m.result = Sent("mock")
}
