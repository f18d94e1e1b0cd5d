package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

// Err is the base marker for every failure produced by this package.
// Application code rarely sees it directly; it exists so the whole
// taxonomy can be caught with a single errors.Is check.
var Err = stderrors.New("wamp error")

// baseError is a field-less taxonomy variant: a sentinel that also matches
// the base marker.
type baseError string

func (e baseError) Error() string { return string(e) }

func (e baseError) Is(target error) bool { return target == Err }

// Field-less taxonomy variants.
var (
	// ErrAuth reports that authentication was rejected. Fatal to the join
	// attempt.
	ErrAuth = baseError("authentication failed")

	// ErrClientClosed reports an operation attempted after client
	// shutdown. Never retried.
	ErrClientClosed = baseError("client closed")

	// ErrInvalidMessage reports a malformed or unparseable message. All
	// message-framing violations match it.
	ErrInvalidMessage = baseError("invalid message")
)

// TransportError reports a connection-level failure. It is generally fatal
// to the current session and surfaces to the caller unchanged.
type TransportError struct {
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Cause == nil {
		return "transport error"
	}
	return fmt.Sprintf("transport error: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Cause }

// Is matches the package's base marker.
func (*TransportError) Is(target error) bool { return target == Err }

// AbortError reports that the peer aborted session establishment. It
// carries the peer's machine-readable reason URI and auxiliary details.
type AbortError struct {
	Reason  uri.URI
	Details message.Dict
}

// NewAbortError builds an AbortError from a received abort message.
func NewAbortError(msg *message.Abort) *AbortError {
	return &AbortError{Reason: msg.Reason, Details: msg.Details}
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return fmt.Sprintf("%s (details = %v)", e.Reason, e.Details)
}

// Is matches the package's base marker.
func (*AbortError) Is(target error) bool { return target == Err }

// UnexpectedMessageError reports that a message of the wrong kind arrived
// where one specific kind was required. It matches ErrInvalidMessage.
type UnexpectedMessageError struct {
	// Received is the message that actually arrived.
	Received message.Message

	// Expected is the kind that was required.
	Expected message.Kind
}

// Error implements the error interface.
func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("received message %v but expected message of type %s",
		e.Received, e.Expected)
}

// Is matches ErrInvalidMessage and the base marker.
func (*UnexpectedMessageError) Is(target error) bool {
	return target == Err || target == ErrInvalidMessage
}

// ErrorResponse wraps a remote error whose URI nobody registered a factory
// for. The raw message is carried unchanged so callers can inspect the full
// payload.
type ErrorResponse struct {
	Message *message.Error
}

// URI returns the error URI of the wrapped message.
func (e *ErrorResponse) URI() uri.URI { return e.Message.URI }

// Error renders "<uri> <args...> (<k>=<v>, ...)", omitting the args and
// kwargs sections when empty. This is a display contract for logs, not a
// parseable format.
func (e *ErrorResponse) Error() string {
	var b strings.Builder
	b.WriteString(e.Message.URI.String())

	if len(e.Message.Args) > 0 {
		b.WriteByte(' ')
		b.WriteString(joinArgs(e.Message.Args))
	}

	if len(e.Message.Kwargs) > 0 {
		keys := make([]string, 0, len(e.Message.Kwargs))
		for k := range e.Message.Kwargs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, e.Message.Kwargs[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(pairs, ", "))
	}

	return b.String()
}

// Is matches the package's base marker.
func (*ErrorResponse) Is(target error) bool { return target == Err }

// Interrupt signals that the remote side requested cancellation of an
// in-flight invocation. It is delivered to the invocation's handler so it
// can decide whether to cooperate; it is not surfaced as the call's result.
type Interrupt struct {
	Options message.Dict
}

// CancelMode returns the cancel mode carried in the interrupt's options.
// The second return value reports whether a string mode was actually
// present; a missing or non-string "mode" entry is distinct from an empty
// mode value.
func (e *Interrupt) CancelMode() (message.CancelMode, bool) {
	mode, ok := e.Options["mode"].(string)
	return message.CancelMode(mode), ok
}

// Error implements the error interface.
func (e *Interrupt) Error() string {
	return fmt.Sprintf("interrupt (options = %v)", e.Options)
}

// Is matches the package's base marker.
func (*Interrupt) Is(target error) bool { return target == Err }

func joinArgs(args message.List) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ", ")
}
