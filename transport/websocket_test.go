package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gieseladev/wampio/errors"
	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/pkg/retry"
)

// echoServer upgrades each request and echoes every frame back.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketSendReceive(t *testing.T) {
	srv := echoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := DialWebSocket(ctx, wsURL(srv))
	require.NoError(t, err)
	defer tr.Close()

	sent := &message.Error{
		URI:    "com.example.oops",
		Args:   message.List{"boom"},
		Kwargs: message.Dict{"code": "E42"},
	}
	require.NoError(t, tr.Send(ctx, sent))

	got, err := tr.Receive(ctx)
	require.NoError(t, err)

	received, ok := got.(*message.Error)
	require.True(t, ok, "expected *message.Error, got %T", got)
	assert.Equal(t, sent.URI, received.URI)
	assert.Equal(t, sent.Args, received.Args)
	assert.Equal(t, sent.Kwargs, received.Kwargs)
}

func TestWebSocketReceiveContextCancelled(t *testing.T) {
	srv := echoServer(t)

	tr, err := DialWebSocket(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = tr.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebSocketSendAfterClose(t *testing.T) {
	srv := echoServer(t)

	tr, err := DialWebSocket(context.Background(), wsURL(srv))
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	err = tr.Send(context.Background(), &message.Interrupt{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDialWebSocketFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := DialWebSocket(ctx, "ws://127.0.0.1:1",
		WithDialRetry(retry.Config{MaxAttempts: 1, InitialDelay: time.Millisecond}))
	require.Error(t, err)

	var te *errors.TransportError
	assert.ErrorAs(t, err, &te)
}
