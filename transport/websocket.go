package transport

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/gieseladev/wampio/errors"
	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/pkg/retry"
)

// ErrClosed is returned by Send and Receive after the transport shut down.
var ErrClosed = stderrors.New("transport closed")

// WebSocket moves JSON frames over a websocket connection. Reads and
// writes each run on their own pump so the connection is never written
// concurrently.
type WebSocket struct {
	conn *websocket.Conn
	log  *slog.Logger

	inbound  chan message.Message
	outbound chan []byte

	group *errgroup.Group
	stop  context.CancelFunc
	done  <-chan struct{}

	closeOnce sync.Once

	errMu   sync.Mutex
	termErr error
}

// WebSocketOption configures a websocket transport at dial time.
type WebSocketOption func(*webSocketConfig)

type webSocketConfig struct {
	dialRetry retry.Config
	log       *slog.Logger
	buffer    int
}

// WithDialRetry sets the backoff schedule used while dialing.
func WithDialRetry(cfg retry.Config) WebSocketOption {
	return func(c *webSocketConfig) { c.dialRetry = cfg }
}

// WithWebSocketLogger sets the logger for connection diagnostics.
func WithWebSocketLogger(log *slog.Logger) WebSocketOption {
	return func(c *webSocketConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// DialWebSocket connects to rawURL and starts the read and write pumps.
// Dial failures are retried per the configured schedule; a 4xx handshake
// response stops retrying immediately.
func DialWebSocket(ctx context.Context, rawURL string, opts ...WebSocketOption) (*WebSocket, error) {
	cfg := webSocketConfig{
		dialRetry: retry.DefaultConfig(),
		log:       slog.Default(),
		buffer:    16,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var conn *websocket.Conn
	err := retry.Do(ctx, cfg.dialRetry, func() error {
		c, resp, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
		if err != nil {
			if resp != nil && resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
				return retry.NonRetryable(fmt.Errorf("handshake rejected with %s: %w", resp.Status, err))
			}
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, &errors.TransportError{Cause: err}
	}

	t := &WebSocket{
		conn:     conn,
		log:      cfg.log,
		inbound:  make(chan message.Message, cfg.buffer),
		outbound: make(chan []byte, cfg.buffer),
	}
	t.start()
	return t, nil
}

func (t *WebSocket) start() {
	runCtx, cancel := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(runCtx)

	t.group = group
	t.stop = cancel
	t.done = groupCtx.Done()

	group.Go(func() error { return t.readPump(groupCtx) })
	group.Go(func() error { return t.writePump(groupCtx) })

	// Once either pump fails the connection is dead; close it so the
	// other pump unblocks.
	go func() {
		<-groupCtx.Done()
		_ = t.conn.Close()
	}()
}

func (t *WebSocket) readPump(ctx context.Context) error {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			return t.fail(&errors.TransportError{Cause: err})
		}

		msg, err := message.Unmarshal(data)
		if err != nil {
			return t.fail(fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err))
		}

		select {
		case t.inbound <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *WebSocket) writePump(ctx context.Context) error {
	for {
		select {
		case data := <-t.outbound:
			if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return t.fail(&errors.TransportError{Cause: err})
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// fail records the first terminal error and wakes pending callers.
func (t *WebSocket) fail(err error) error {
	t.errMu.Lock()
	if t.termErr == nil {
		t.termErr = err
	}
	t.errMu.Unlock()
	return err
}

// Err returns the failure that terminated the transport, or ErrClosed
// after a clean Close, or nil while the transport is running.
func (t *WebSocket) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.termErr
}

func (t *WebSocket) terminalErr() error {
	if err := t.Err(); err != nil {
		return err
	}
	return ErrClosed
}

// Send implements Transport.
func (t *WebSocket) Send(ctx context.Context, msg message.Message) error {
	data, err := message.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msg.MessageKind(), err)
	}

	select {
	case <-t.done:
		return t.terminalErr()
	default:
	}

	select {
	case t.outbound <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return t.terminalErr()
	}
}

// Receive implements Transport.
func (t *WebSocket) Receive(ctx context.Context) (message.Message, error) {
	select {
	case msg := <-t.inbound:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		// Drain messages decoded before the failure.
		select {
		case msg := <-t.inbound:
			return msg, nil
		default:
		}
		return nil, t.terminalErr()
	}
}

// Close implements Transport.
func (t *WebSocket) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.fail(ErrClosed)
		t.stop()

		closeFrame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if werr := t.conn.WriteMessage(websocket.CloseMessage, closeFrame); werr != nil {
			t.log.Debug("writing close frame failed", "error", werr)
		}

		err = t.conn.Close()
		_ = t.group.Wait()
	})
	return err
}
