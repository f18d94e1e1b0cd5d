package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

// ErrorFactory builds a typed failure from a received wire error message.
type ErrorFactory func(msg *message.Error) error

// ErrUnregistered is returned by ExceptionURI for an error kind that was
// never registered in the outbound table.
var ErrUnregistered = stderrors.New("no uri registered for error kind")

// Translation outcome labels reported to the metrics hook.
const (
	// OutcomeRegistered marks a translation served by a registered entry.
	OutcomeRegistered = "registered"
	// OutcomeFallback marks a translation served by the generic fallback.
	OutcomeFallback = "fallback"
	// OutcomeIdentity marks an outbound conversion whose input already was
	// an invocation error.
	OutcomeIdentity = "identity"
	// OutcomeAttached marks an outbound conversion served by an explicitly
	// attached invocation error.
	OutcomeAttached = "attached"
)

// Metrics receives translation outcomes. Implementations must be safe for
// concurrent use; the metric package provides a Prometheus-backed one.
type Metrics interface {
	// InboundTranslation records one wire-error-to-exception translation.
	InboundTranslation(outcome string)
	// OutboundConversion records one exception-to-invocation-error
	// conversion, labeled with the resolution branch that served it.
	OutboundConversion(branch string)
}

// Registry holds the two translation tables of the error layer: the inbound
// URI-to-factory table and the outbound error-kind-to-URI table, plus the
// side-channel that attaches invocation errors to arbitrary failures.
//
// The tables are independent: registering an inbound URI does not create an
// outbound entry, and vice versa. Registration is expected during
// initialization, before lookups depend on it; interleaved registration and
// lookup is nevertheless linearized and safe.
type Registry struct {
	log     *slog.Logger
	metrics Metrics

	inbound *uri.Map[ErrorFactory]

	outMu    sync.RWMutex
	outbound map[reflect.Type]uri.URI

	attachMu sync.Mutex
	attached map[error]*InvocationError
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for diagnostic notes. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics sets the translation metrics hook. Without it, outcomes are
// not recorded.
func WithMetrics(m Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:      slog.Default(),
		inbound:  uri.NewMap[ErrorFactory](),
		outbound: make(map[reflect.Type]uri.URI),
		attached: make(map[error]*InvocationError),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterErrorResponse stores factory in the inbound table under u,
// overwriting any prior factory for that exact URI. New remote error kinds
// are added by registering their URI once, before message traffic depends
// on it.
func (r *Registry) RegisterErrorResponse(u uri.URI, factory ErrorFactory) error {
	if !u.Valid() {
		return fmt.Errorf("register error response: %w: %q", uri.ErrInvalid, string(u))
	}
	if factory == nil {
		return fmt.Errorf("register error response %s: error factory must not be nil", u)
	}

	r.inbound.Set(u, factory)
	return nil
}

// Factory returns the inbound factory registered for u, or an error
// matching uri.ErrNotFound.
func (r *Registry) Factory(u uri.URI) (ErrorFactory, error) {
	return r.inbound.Resolve(u)
}

// ErrorToException translates a received wire error message into a typed
// failure. A registered URI yields its factory's result; any other URI
// yields an ErrorResponse wrapping the message unchanged. An unknown remote
// error always surfaces as some catchable failure; this never fails.
func (r *Registry) ErrorToException(msg *message.Error) error {
	factory, err := r.inbound.Resolve(msg.URI)
	if err != nil {
		r.countInbound(OutcomeFallback)
		return &ErrorResponse{Message: msg}
	}

	e := factory(msg)
	if e == nil {
		r.log.Warn("error factory returned nil, falling back to error response",
			"uri", msg.URI)
		r.countInbound(OutcomeFallback)
		return &ErrorResponse{Message: msg}
	}

	r.countInbound(OutcomeRegistered)
	return e
}

// RegisterExceptionURI stores u in the outbound table for sample's dynamic
// type. sample is only used for its type; a zero value of the error kind
// works fine.
func (r *Registry) RegisterExceptionURI(sample error, u uri.URI) error {
	if sample == nil {
		return fmt.Errorf("register exception uri %s: sample error must not be nil", u)
	}
	if !u.Valid() {
		return fmt.Errorf("register exception uri: %w: %q", uri.ErrInvalid, string(u))
	}

	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.outbound[reflect.TypeOf(sample)] = u
	return nil
}

// ExceptionURI returns the URI registered for err's dynamic type, or an
// error matching ErrUnregistered.
func (r *Registry) ExceptionURI(err error) (uri.URI, error) {
	if err == nil {
		return "", fmt.Errorf("%w: <nil>", ErrUnregistered)
	}

	r.outMu.RLock()
	defer r.outMu.RUnlock()

	u, ok := r.outbound[reflect.TypeOf(err)]
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnregistered, err)
	}
	return u, nil
}

// ExceptionToInvocationError converts an arbitrary application failure into
// the InvocationError a remote caller should see. Resolution order, which
// callers may rely on:
//
//  1. err already is an *InvocationError: returned unchanged.
//  2. err carries an attached invocation error (SetInvocationError): the
//     attached value is returned.
//  3. err's dynamic type has a registered URI: a new InvocationError is
//     built from that URI with err's message as the positional payload.
//  4. Otherwise the generic uri.RuntimeError URI is used; the unregistered
//     kind is logged as a diagnostic.
func (r *Registry) ExceptionToInvocationError(err error) *InvocationError {
	if ie, ok := err.(*InvocationError); ok {
		r.countOutbound(OutcomeIdentity)
		return ie
	}

	if ie, ok := r.attachedError(err); ok {
		r.countOutbound(OutcomeAttached)
		return ie
	}

	u, lookupErr := r.ExceptionURI(err)
	if lookupErr != nil {
		r.log.Info("no uri registered for error kind, using generic runtime error",
			"kind", fmt.Sprintf("%T", err), "uri", uri.RuntimeError)
		r.countOutbound(OutcomeFallback)
		u = uri.RuntimeError
	} else {
		r.countOutbound(OutcomeRegistered)
	}

	if err == nil {
		return NewInvocationError(u)
	}
	return NewInvocationError(u, WithArgs(err.Error()))
}

// SetInvocationError attaches invErr to target so that later outbound
// conversion reports invErr to the remote caller. When target itself is an
// *InvocationError its fields are overwritten in place, preserving its
// identity. Any other failure, including third-party and stdlib ones, gets
// invErr associated through a side table without altering the failure's own
// type or fields.
//
// The last writer wins; replacing a prior value is logged, not rejected.
func (r *Registry) SetInvocationError(target error, invErr *InvocationError) {
	if target == nil || invErr == nil {
		r.log.Warn("ignoring invocation error attachment with nil argument")
		return
	}

	if ie, ok := target.(*InvocationError); ok {
		r.log.Info("overwriting invocation error", "old", ie, "new", invErr)
		ie.setFrom(invErr)
		return
	}

	if !reflect.TypeOf(target).Comparable() {
		r.log.Warn("cannot attach invocation error: error value is not comparable",
			"kind", fmt.Sprintf("%T", target))
		return
	}

	r.attachMu.Lock()
	defer r.attachMu.Unlock()
	if old, ok := r.attached[target]; ok {
		r.log.Info("replacing attached invocation error", "old", old, "new", invErr)
	}
	r.attached[target] = invErr
}

// ClearInvocationError drops any invocation error attached to target. Call
// it when the failure's lifetime ends, after the outbound payload has been
// produced.
func (r *Registry) ClearInvocationError(target error) {
	if target == nil || !reflect.TypeOf(target).Comparable() {
		return
	}

	r.attachMu.Lock()
	defer r.attachMu.Unlock()
	delete(r.attached, target)
}

// attachedError reports the invocation error attached to err, if any.
// Absence is distinct from an attached value with default fields: the
// boolean is false only when nothing was attached.
func (r *Registry) attachedError(err error) (*InvocationError, bool) {
	if err == nil || !reflect.TypeOf(err).Comparable() {
		return nil, false
	}

	r.attachMu.Lock()
	defer r.attachMu.Unlock()

	ie, ok := r.attached[err]
	return ie, ok
}

func (r *Registry) countInbound(outcome string) {
	if r.metrics != nil {
		r.metrics.InboundTranslation(outcome)
	}
}

func (r *Registry) countOutbound(branch string) {
	if r.metrics != nil {
		r.metrics.OutboundConversion(branch)
	}
}
