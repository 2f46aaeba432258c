// Package event decodes raw invocation payloads into the canonical voucher payload.
//
// Two envelope shapes are accepted. A gateway event carries the payload as a JSON string under
// the "body" key (API Gateway, Lambda function URLs, the local service mode). A direct event is
// the payload object itself. The shape is decided once, from the presence of the "body" key.
package event

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/fallsafe/voucher-email/internal/models"
)

const (
	bodyKey            = "body"
	isBase64EncodedKey = "isBase64Encoded"
)

// Payload holds the top-level fields of a decoded voucher payload, keyed by field name.
type Payload map[string]json.RawMessage

// Parse inspects the envelope and returns either a models.GatewayEvent or a models.DirectEvent.
func Parse(raw []byte) (models.Event, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	body, found := fields[bodyKey]
	if !found {
		return models.DirectEvent{Payload: json.RawMessage(raw)}, nil
	}
	if isNull(body) {
		return nil, NewMalformedError("body is null")
	}
	var s string
	if err = json.Unmarshal(body, &s); err != nil {
		return nil, NewMalformedError("body is not a string: %v", err)
	}

	ev := models.GatewayEvent{Body: s}
	if flag, ok := fields[isBase64EncodedKey]; ok {
		// a non-boolean flag is treated as absent
		_ = json.Unmarshal(flag, &ev.IsBase64Encoded)
	}
	return ev, nil
}

// PayloadOf returns the payload object carried by the event.
func PayloadOf(ev models.Event) (Payload, error) {
	switch e := ev.(type) {
	case models.GatewayEvent:
		data := []byte(e.Body)
		if e.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(e.Body)
			if err != nil {
				return nil, NewMalformedError("body is not valid base64: %v", err)
			}
			data = decoded
		}
		return decodeObject(data)
	case models.DirectEvent:
		return decodeObject(e.Payload)
	default:
		return nil, NewMalformedError("unsupported event type %T", ev)
	}
}

// Decode parses the envelope and returns its payload.
func Decode(raw []byte) (Payload, error) {
	ev, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return PayloadOf(ev)
}

func decodeObject(data []byte) (Payload, error) {
	var fields Payload
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, NewMalformedError("not a JSON object: %v", err)
	}
	if fields == nil {
		return nil, NewMalformedError("not a JSON object: null")
	}
	return fields, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
