package message

import "github.com/gieseladev/wampio/uri"

// Event carries a single publication delivered to a subscriber.
type Event struct {
	PublicationID int64 `json:"publication_id"`
	Args          List  `json:"args,omitempty"`
	Kwargs        Dict  `json:"kwargs,omitempty"`
	Details       Dict  `json:"details,omitempty"`
}

// MessageKind implements Message.
func (*Event) MessageKind() Kind { return KindEvent }

// Abort terminates session establishment before it completes. Reason is a
// machine-readable URI; Details carries auxiliary data from the peer.
type Abort struct {
	Reason  uri.URI `json:"reason"`
	Details Dict    `json:"details,omitempty"`
}

// MessageKind implements Message.
func (*Abort) MessageKind() Kind { return KindAbort }

// Interrupt requests cancellation of an in-flight invocation. The requested
// cancel mode, if any, is carried in Options under the "mode" key.
type Interrupt struct {
	Options Dict `json:"options,omitempty"`
}

// MessageKind implements Message.
func (*Interrupt) MessageKind() Kind { return KindInterrupt }
