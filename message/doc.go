// Package message defines the wire-level message shapes consumed and
// produced by the error-translation layer, together with the JSON frame
// codec transports use to move them.
//
// Messages are value types: once decoded from the wire they are treated as
// immutable. The package carries no routing or transport logic; it only
// describes data.
//
// The payload containers List and Dict mirror the protocol's positional and
// keyword payloads. Optional payload fields are nil when absent, never empty
// containers, so encoding can omit them entirely.
package message
