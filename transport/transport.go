package transport

import (
	"context"

	"github.com/gieseladev/wampio/message"
)

// Transport is a bidirectional, message-oriented connection to a peer.
// Implementations are safe for one concurrent sender and one concurrent
// receiver.
type Transport interface {
	// Send transmits msg. It blocks until the message is handed to the
	// connection, ctx ends, or the transport fails.
	Send(ctx context.Context, msg message.Message) error

	// Receive returns the next message from the peer. It blocks until a
	// message arrives, ctx ends, or the transport fails.
	Receive(ctx context.Context) (message.Message, error)

	// Close tears the connection down. Pending Send and Receive calls
	// return a transport failure.
	Close() error
}
