package client

import (
	"context"

	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

// Client is the slice of the messaging client a subscription event needs:
// the ability to unsubscribe from the topic it was delivered on.
type Client interface {
	// Unsubscribe removes the subscription for topic.
	Unsubscribe(ctx context.Context, topic uri.URI) error
}

// SubscriptionEvent carries a single publication delivered to a
// subscriber. It is immutable after construction.
type SubscriptionEvent struct {
	client Client

	topic         uri.URI
	publicationID int64

	args    message.List
	kwargs  message.Dict
	details message.Dict
}

// NewSubscriptionEvent builds an event from a received event message.
// There is normally no need to call this outside a client implementation.
//
// The positional payload is copied so that the event stays stable even if
// the caller keeps mutating msg; kwargs and details are shallow-copied the
// same way.
func NewSubscriptionEvent(c Client, msg *message.Event, topic uri.URI) *SubscriptionEvent {
	args := make(message.List, len(msg.Args))
	copy(args, msg.Args)

	kwargs := make(message.Dict, len(msg.Kwargs))
	for k, v := range msg.Kwargs {
		kwargs[k] = v
	}

	var details message.Dict
	if msg.Details != nil {
		details = make(message.Dict, len(msg.Details))
		for k, v := range msg.Details {
			details[k] = v
		}
	}

	return &SubscriptionEvent{
		client:        c,
		topic:         topic,
		publicationID: msg.PublicationID,
		args:          args,
		kwargs:        kwargs,
		details:       details,
	}
}

// Client returns the client the event was delivered by.
func (e *SubscriptionEvent) Client() Client { return e.client }

// PublicationID returns the router-assigned id of the publication.
func (e *SubscriptionEvent) PublicationID() int64 { return e.publicationID }

// SubscribedTopic returns the topic the subscription was made on.
func (e *SubscriptionEvent) SubscribedTopic() uri.URI { return e.topic }

// Args returns the positional payload, never nil.
func (e *SubscriptionEvent) Args() message.List { return e.args }

// Kwargs returns the keyword payload, never nil.
func (e *SubscriptionEvent) Kwargs() message.Dict { return e.kwargs }

// Details returns the event details as received.
func (e *SubscriptionEvent) Details() message.Dict { return e.details }

// Unsubscribe removes the subscription the event was delivered on,
// delegating to the client.
func (e *SubscriptionEvent) Unsubscribe(ctx context.Context) error {
	return e.client.Unsubscribe(ctx, e.topic)
}
