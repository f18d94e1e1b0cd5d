package message

import "github.com/gieseladev/wampio/uri"

// Error is the wire representation of a failed call or request: an error
// URI plus optional positional/keyword payloads and details. It is produced
// by the transport layer and treated as immutable once received.
type Error struct {
	URI     uri.URI `json:"error"`
	Args    List    `json:"args,omitempty"`
	Kwargs  Dict    `json:"kwargs,omitempty"`
	Details Dict    `json:"details,omitempty"`
}

// MessageKind implements Message.
func (*Error) MessageKind() Kind { return KindError }

// ErrorPayload is the outbound wire shape reporting an application failure
// back to a remote caller. It mirrors the fields of an invocation error;
// absent fields stay nil so that encoding omits them rather than sending
// empty containers.
type ErrorPayload struct {
	URI     uri.URI `json:"uri"`
	Args    List    `json:"args,omitempty"`
	Kwargs  Dict    `json:"kwargs,omitempty"`
	Details Dict    `json:"details,omitempty"`
}
