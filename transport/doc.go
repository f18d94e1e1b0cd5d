// Package transport moves wire messages between the client and its peer.
//
// The error-translation layer treats the transport as an external
// collaborator: it only sees the Transport interface and the decoded
// messages it yields. Two implementations are provided, one speaking JSON
// frames over a websocket and one exchanging frames over NATS subjects.
// Connection-level failures surface as errors.TransportError; malformed
// frames surface as failures matching errors.ErrInvalidMessage.
package transport
