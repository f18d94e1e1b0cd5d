package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/gieseladev/wampio/errors"
	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/pkg/retry"
)

// inboxPrefix namespaces the per-connection subjects frames arrive on.
const inboxPrefix = "wampio.peer."

// NATS moves JSON frames over NATS subjects: outgoing frames are published
// to the peer's subject, incoming frames arrive on a per-connection inbox
// subject that the peer learns during session setup.
type NATS struct {
	conn *nats.Conn
	log  *slog.Logger

	inbox string
	peer  string

	sub  *nats.Subscription
	msgs chan *nats.Msg

	closeOnce sync.Once
}

// NATSOption configures a NATS transport at dial time.
type NATSOption func(*natsConfig)

type natsConfig struct {
	dialRetry retry.Config
	log       *slog.Logger
	name      string
	timeout   time.Duration
	buffer    int
}

// WithNATSDialRetry sets the backoff schedule used while connecting.
func WithNATSDialRetry(cfg retry.Config) NATSOption {
	return func(c *natsConfig) { c.dialRetry = cfg }
}

// WithNATSLogger sets the logger for connection diagnostics.
func WithNATSLogger(log *slog.Logger) NATSOption {
	return func(c *natsConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithConnectionName sets the client name reported to the NATS server.
func WithConnectionName(name string) NATSOption {
	return func(c *natsConfig) { c.name = name }
}

// DialNATS connects to the NATS server at url and subscribes a fresh inbox
// for incoming frames. peerSubject is the subject the remote peer listens
// on; the local Inbox is handed to the peer by the session layer.
func DialNATS(ctx context.Context, url, peerSubject string, opts ...NATSOption) (*NATS, error) {
	cfg := natsConfig{
		dialRetry: retry.DefaultConfig(),
		log:       slog.Default(),
		name:      "wampio",
		timeout:   5 * time.Second,
		buffer:    64,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var conn *nats.Conn
	err := retry.Do(ctx, cfg.dialRetry, func() error {
		c, err := nats.Connect(url,
			nats.Name(cfg.name),
			nats.Timeout(cfg.timeout),
			nats.MaxReconnects(-1))
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, &errors.TransportError{Cause: err}
	}

	t := &NATS{
		conn:  conn,
		log:   cfg.log,
		inbox: inboxPrefix + uuid.NewString(),
		peer:  peerSubject,
		msgs:  make(chan *nats.Msg, cfg.buffer),
	}

	sub, err := conn.ChanSubscribe(t.inbox, t.msgs)
	if err != nil {
		conn.Close()
		return nil, &errors.TransportError{Cause: fmt.Errorf("subscribe inbox: %w", err)}
	}
	t.sub = sub

	return t, nil
}

// Inbox returns the subject the peer must publish frames to.
func (t *NATS) Inbox() string { return t.inbox }

// Send implements Transport.
func (t *NATS) Send(ctx context.Context, msg message.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := message.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msg.MessageKind(), err)
	}

	if err := t.conn.Publish(t.peer, data); err != nil {
		return &errors.TransportError{Cause: err}
	}
	return nil
}

// Receive implements Transport.
func (t *NATS) Receive(ctx context.Context) (message.Message, error) {
	select {
	case m, ok := <-t.msgs:
		if !ok {
			return nil, &errors.TransportError{Cause: ErrClosed}
		}

		msg, err := message.Unmarshal(m.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close implements Transport.
func (t *NATS) Close() error {
	var err error
	t.closeOnce.Do(func() {
		if uerr := t.sub.Unsubscribe(); uerr != nil {
			t.log.Debug("unsubscribing inbox failed", "error", uerr)
		}
		close(t.msgs)

		if derr := t.conn.Drain(); derr != nil {
			t.conn.Close()
			err = &errors.TransportError{Cause: derr}
		}
	})
	return err
}
