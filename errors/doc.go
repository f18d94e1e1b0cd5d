// Package errors defines the failure taxonomy of the messaging client and
// the registries that translate between wire-level error messages and
// typed Go errors.
//
// # Taxonomy
//
// Every failure produced by this package matches the base marker Err, so
// application code can catch the whole family uniformly:
//
//	if stderrors.Is(err, errors.Err) {
//	    // protocol-level failure
//	}
//
// The variants cover transport failure (TransportError), session abort
// (AbortError), authentication failure (ErrAuth), malformed messages
// (ErrInvalidMessage, UnexpectedMessageError), unregistered remote errors
// (ErrorResponse), post-shutdown use (ErrClientClosed), invocation
// cancellation requests (Interrupt), and failures destined for a remote
// caller (InvocationError).
//
// # Inbound translation
//
// A Registry maps error URIs to factories. Translating a received error
// message never fails: a URI nobody registered surfaces as an
// ErrorResponse wrapping the raw message.
//
//	reg.RegisterErrorResponse(myURI, func(msg *message.Error) error {
//	    return &MyError{...}
//	})
//	err := reg.ErrorToException(msg)
//
// # Outbound translation
//
// When a call handler fails, ExceptionToInvocationError decides what the
// remote caller sees, in strict priority order: an error that already is
// an *InvocationError is returned as-is; an explicitly attached invocation
// error (SetInvocationError) comes next; then the URI registered for the
// error's type; finally the generic uri.RuntimeError fallback.
//
// Registration is expected to happen during initialization, before message
// traffic depends on it. Lookups are safe concurrently.
package errors
