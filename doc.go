// Package wampio is the error-representation and error-translation layer
// of a publish/subscribe + remote-procedure-call messaging client.
//
// # Architecture
//
// The module is organized leaf-first:
//
//   - uri: the validated, hierarchical URI value type that keys everything,
//     plus a generic exact-match registry (uri.Map).
//   - message: the wire message shapes this layer consumes and produces,
//     and the JSON frame codec the transports use.
//   - errors: the failure taxonomy, the inbound URI-to-factory and
//     outbound kind-to-URI registries, and the invocation-error
//     attachment side-channel.
//   - client: the subscription event collaborator delivered to
//     subscribers.
//   - transport: websocket and NATS implementations of the wire
//     collaborator boundary.
//   - metric: Prometheus counters for translation outcomes.
//   - config: client configuration loading and validation.
//
// # Error flow
//
// Inbound, a wire error message is resolved through the registry to a
// typed, catchable failure; URIs nobody registered surface as a generic
// errors.ErrorResponse, never as a crash. Outbound, an arbitrary
// application failure is converted to an errors.InvocationError in a
// strict priority order: the failure itself, an explicitly attached
// invocation error, the URI registered for the failure's kind, and
// finally the generic runtime-error URI.
//
// Registration on both paths is an initialization-time extension point:
// new error kinds plug in without touching the dispatch code.
package wampio
