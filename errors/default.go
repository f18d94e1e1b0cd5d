package errors

import (
	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

// defaultRegistry backs the package-level convenience functions. Most
// programs need exactly one registry; library setup code registers into it
// during initialization and the client reads from it thereafter.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions. Prefer passing a Registry explicitly where dependency
// injection is practical.
func Default() *Registry { return defaultRegistry }

// RegisterErrorResponse registers an inbound factory in the default
// registry.
func RegisterErrorResponse(u uri.URI, factory ErrorFactory) error {
	return defaultRegistry.RegisterErrorResponse(u, factory)
}

// ErrorToException translates msg using the default registry.
func ErrorToException(msg *message.Error) error {
	return defaultRegistry.ErrorToException(msg)
}

// RegisterExceptionURI registers an outbound kind-to-URI entry in the
// default registry.
func RegisterExceptionURI(sample error, u uri.URI) error {
	return defaultRegistry.RegisterExceptionURI(sample, u)
}

// ExceptionURI resolves err's kind in the default registry.
func ExceptionURI(err error) (uri.URI, error) {
	return defaultRegistry.ExceptionURI(err)
}

// ExceptionToInvocationError converts err using the default registry.
func ExceptionToInvocationError(err error) *InvocationError {
	return defaultRegistry.ExceptionToInvocationError(err)
}

// SetInvocationError attaches invErr to target in the default registry.
func SetInvocationError(target error, invErr *InvocationError) {
	defaultRegistry.SetInvocationError(target, invErr)
}

// ClearInvocationError drops target's attachment from the default registry.
func ClearInvocationError(target error) {
	defaultRegistry.ClearInvocationError(target)
}
