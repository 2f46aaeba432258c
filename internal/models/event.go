package models

import "encoding/json"

// Event is the decoded invocation envelope. It is either a GatewayEvent or a DirectEvent.
type Event interface {
	isEvent()
}

// GatewayEvent is an HTTP-trigger envelope where the payload is a JSON string nested under "body".
type GatewayEvent struct {
	Body            string
	IsBase64Encoded bool
}

// DirectEvent is a direct invocation where the payload fields are the top-level object.
type DirectEvent struct {
	Payload json.RawMessage
}

func (GatewayEvent) isEvent() {}
func (DirectEvent) isEvent()  {}
