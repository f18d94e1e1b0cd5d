package errors

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

// InvocationError is a failure destined to be reported back to a remote
// caller as a wire error. It is the canonical "what the caller should see"
// representation: a non-empty error URI plus optional positional/keyword
// payloads and details.
//
// Absent payload fields are nil rather than empty containers, so the wire
// encoding can omit them.
type InvocationError struct {
	uri     uri.URI
	args    message.List
	kwargs  message.Dict
	details message.Dict
}

// InvocationErrorOption configures an InvocationError at construction.
type InvocationErrorOption func(*InvocationError)

// WithArgs sets the positional payload.
func WithArgs(args ...any) InvocationErrorOption {
	return func(e *InvocationError) {
		if len(args) > 0 {
			e.args = args
		}
	}
}

// WithKwargs sets the keyword payload.
func WithKwargs(kwargs message.Dict) InvocationErrorOption {
	return func(e *InvocationError) {
		if len(kwargs) > 0 {
			e.kwargs = kwargs
		}
	}
}

// WithDetails sets the details mapping.
func WithDetails(details message.Dict) InvocationErrorOption {
	return func(e *InvocationError) {
		if len(details) > 0 {
			e.details = details
		}
	}
}

// NewInvocationError creates an InvocationError for the given error URI.
// Build u with uri.Parse or use one of the well-known constants; an
// invalid u is replaced with uri.RuntimeError and logged, so every
// invocation error carries a non-empty URI.
func NewInvocationError(u uri.URI, opts ...InvocationErrorOption) *InvocationError {
	if !u.Valid() {
		slog.Default().Warn("invalid invocation error uri, using generic runtime error",
			"uri", string(u))
		u = uri.RuntimeError
	}

	e := &InvocationError{uri: u}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// URI returns the error URI.
func (e *InvocationError) URI() uri.URI { return e.uri }

// Args returns the positional payload, or nil when none was supplied.
func (e *InvocationError) Args() message.List { return e.args }

// Kwargs returns the keyword payload, or nil when none was supplied.
func (e *InvocationError) Kwargs() message.Dict { return e.kwargs }

// Details returns the details mapping, or nil when none was supplied.
func (e *InvocationError) Details() message.Dict { return e.details }

// Payload returns the outbound wire shape for this error, sharing the
// underlying payload containers.
func (e *InvocationError) Payload() *message.ErrorPayload {
	return &message.ErrorPayload{
		URI:     e.uri,
		Args:    e.args,
		Kwargs:  e.kwargs,
		Details: e.details,
	}
}

// setFrom overwrites e's fields from other, preserving e's identity.
func (e *InvocationError) setFrom(other *InvocationError) {
	e.uri = other.uri
	e.args = other.args
	e.kwargs = other.kwargs
	e.details = other.details
}

// Error renders "<uri> <args...>" when positional arguments are present and
// just "<uri>" otherwise. Kwargs and details are excluded from the display
// form; use GoString for the verbose rendering.
func (e *InvocationError) Error() string {
	if len(e.args) > 0 {
		return fmt.Sprintf("%s %s", e.uri, joinArgs(e.args))
	}
	return e.uri.String()
}

// GoString renders the verbose form including kwargs and details, used by
// the %#v verb in diagnostics.
func (e *InvocationError) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "InvocationError(%q", e.uri)
	for _, a := range e.args {
		fmt.Fprintf(&b, ", %#v", a)
	}
	if e.kwargs != nil {
		fmt.Fprintf(&b, ", kwargs=%v", e.kwargs)
	}
	if e.details != nil {
		fmt.Fprintf(&b, ", details=%v", e.details)
	}
	b.WriteByte(')')
	return b.String()
}

// Is matches the package's base marker.
func (*InvocationError) Is(target error) bool { return target == Err }
