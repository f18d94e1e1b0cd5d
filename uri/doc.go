// Package uri provides the URI value type used to identify error kinds,
// procedures, and topics in the messaging protocol, along with a generic
// exact-match registry keyed by URI.
//
// # URIs
//
// A URI is a dot-separated hierarchical identifier such as
// "wamp.error.runtime_error" or "com.example.orders.create". URIs are
// validated on construction and immutable afterwards; they are plain
// string values and can be compared and used as map keys directly.
//
//	u, err := uri.Parse("com.example.bad_argument")
//	if err != nil {
//	    // raw string was not a valid URI
//	}
//
// Constants for the protocol's well-known error URIs are provided, including
// RuntimeError, the fixed fallback used when an application failure has no
// registered URI of its own.
//
// # Registries
//
// Map is a concurrency-safe registry from URI to an arbitrary value with
// exact-key semantics: Resolve returns ErrNotFound for a URI that was never
// registered, and callers decide what fallback that turns into. Prefix or
// wildcard matching is deliberately not provided; deployments that need a
// pattern scheme layer it on top as an explicit policy.
package uri
