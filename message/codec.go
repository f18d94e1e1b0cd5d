package message

import (
	"encoding/json"
	"fmt"
)

// frame is the JSON envelope transports exchange: a kind discriminator plus
// the kind-specific body.
type frame struct {
	Kind string          `json:"kind"`
	Body json.RawMessage `json:"body"`
}

// Marshal encodes msg as a JSON frame.
func Marshal(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("marshal: nil message")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %s body: %w", msg.MessageKind(), err)
	}

	return json.Marshal(frame{Kind: msg.MessageKind().String(), Body: body})
}

// Unmarshal decodes a JSON frame into the message shape named by its kind.
// Frames with a kind this layer does not handle fail decoding; the caller
// decides whether that is a protocol violation.
func Unmarshal(data []byte) (Message, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}

	var msg Message
	switch f.Kind {
	case KindError.String():
		msg = &Error{}
	case KindEvent.String():
		msg = &Event{}
	case KindAbort.String():
		msg = &Abort{}
	case KindInterrupt.String():
		msg = &Interrupt{}
	default:
		return nil, fmt.Errorf("unmarshal frame: unhandled kind %q", f.Kind)
	}

	if err := json.Unmarshal(f.Body, msg); err != nil {
		return nil, fmt.Errorf("unmarshal %s body: %w", f.Kind, err)
	}
	return msg, nil
}
