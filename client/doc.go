// Package client holds the client-facing collaborator objects of the
// messaging layer. SubscriptionEvent carries one already-decoded
// publication to a subscriber and exposes an unsubscribe capability that
// delegates to the owning client; it performs no error translation itself.
package client
