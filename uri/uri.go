package uri

import (
	"errors"
	"fmt"
	"strings"
)

// URI is a validated, dot-separated hierarchical identifier.
//
// The zero value is the empty URI, which is not valid. Construct URIs with
// Parse (or MustParse for compile-time constants) so that every URI flowing
// through the system has passed validation once.
type URI string

// Well-known protocol error URIs.
const (
	// InvalidURI signals that a peer supplied a malformed URI.
	InvalidURI URI = "wamp.error.invalid_uri"

	// InvalidArgument signals that a call was made with unacceptable
	// arguments.
	InvalidArgument URI = "wamp.error.invalid_argument"

	// NoSuchProcedure signals a call to an unregistered procedure.
	NoSuchProcedure URI = "wamp.error.no_such_procedure"

	// NoSuchSubscription signals an unsubscribe for an unknown subscription.
	NoSuchSubscription URI = "wamp.error.no_such_subscription"

	// NotAuthorized signals that the session may not perform the action.
	NotAuthorized URI = "wamp.error.not_authorized"

	// AuthorizationFailed signals that the authorization check itself
	// failed.
	AuthorizationFailed URI = "wamp.error.authorization_failed"

	// NoSuchRealm signals a join attempt against an unknown realm.
	NoSuchRealm URI = "wamp.error.no_such_realm"

	// Canceled signals that a pending call was cancelled.
	Canceled URI = "wamp.error.canceled"

	// RuntimeError is the generic fallback URI for application failures
	// that registered no URI of their own.
	RuntimeError URI = "wamp.error.runtime_error"
)

// ErrInvalid is returned by Parse when the raw string is not a valid URI.
var ErrInvalid = errors.New("invalid uri")

// Parse validates raw and returns it as a URI.
//
// A valid URI is non-empty and consists of dot-separated, non-empty
// segments containing neither whitespace nor the '#' character.
func Parse(raw string) (URI, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalid)
	}

	for _, seg := range strings.Split(raw, ".") {
		if seg == "" {
			return "", fmt.Errorf("%w: %q contains an empty segment", ErrInvalid, raw)
		}
		if strings.ContainsAny(seg, " \t\r\n#") {
			return "", fmt.Errorf("%w: %q contains an illegal character", ErrInvalid, raw)
		}
	}

	return URI(raw), nil
}

// MustParse is like Parse but panics on invalid input. Intended for
// package-level constants and test fixtures.
func MustParse(raw string) URI {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// Valid reports whether u would pass Parse.
func (u URI) Valid() bool {
	_, err := Parse(string(u))
	return err == nil
}

// Segments returns the dot-separated segments of the URI.
func (u URI) Segments() []string {
	return strings.Split(string(u), ".")
}

// String returns the URI as a plain string.
func (u URI) String() string {
	return string(u)
}
