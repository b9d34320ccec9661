// Package network provides the engine's network transport: a duplex
// websocket channel and verb-based JSON requests over HTTP.
//
// Messages arrive on a background goroutine and are queued on a channel.
// Game code drains them from an update callback with Pump, so network
// activity never runs concurrently with the frame loop's state.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotConnected is returned when sending without an open websocket.
	ErrNotConnected = errors.New("websocket is not connected")

	// ErrAlreadyConnected is returned by Connect when a socket is open.
	ErrAlreadyConnected = errors.New("websocket is already connected")
)

// Message is a websocket message received from the server.
type Message struct {
	Binary bool
	Data   []byte
}

// Text returns the payload as a string.
func (m Message) Text() string {
	return string(m.Data)
}

const (
	defaultBuffer       = 64
	defaultDialTimeout  = 5 * time.Second
	defaultCloseTimeout = time.Second
)

// Client holds at most one websocket connection plus an HTTP client for
// requests. Connect, Send and Disconnect are safe for concurrent use.
type Client struct {
	id             string
	dialer         *websocket.Dialer
	http           *http.Client
	log            *zap.Logger
	buffer         int
	requestTimeout time.Duration

	mu       sync.Mutex
	conn     *websocket.Conn
	group    *errgroup.Group
	done     chan struct{}
	messages chan Message

	writeMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the HTTP client used by Request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithDialTimeout bounds the websocket handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.dialer.HandshakeTimeout = d
		}
	}
}

// WithRequestTimeout bounds each HTTP request. Zero means no limit beyond
// the caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = d
	}
}

// WithBuffer sets how many received messages may queue before the reader
// waits for Pump.
func WithBuffer(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.buffer = n
		}
	}
}

// NewClient returns a disconnected client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		id: uuid.New().String(),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: defaultDialTimeout,
		},
		http:   http.DefaultClient,
		log:    zap.NewNop(),
		buffer: defaultBuffer,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("client", c.id))
	return c
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Connected reports whether Connect succeeded and Disconnect has not been
// called since. A connection closed by the peer stays "connected" until
// Disconnect; its Messages channel is closed.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Connect dials url and starts receiving messages.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return ErrAlreadyConnected
	}

	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		c.log.Error("websocket connect failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("connect %s: %w", url, err)
	}

	c.conn = conn
	c.done = make(chan struct{})
	c.messages = make(chan Message, c.buffer)
	c.group = &errgroup.Group{}

	done, messages := c.done, c.messages
	c.group.Go(func() error {
		return c.readLoop(conn, done, messages)
	})

	c.log.Info("websocket connected", zap.String("url", url))
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn, done <-chan struct{}, messages chan<- Message) error {
	defer close(messages)
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Info("websocket closed by peer")
				return nil
			}
			c.log.Error("websocket read failed", zap.Error(err))
			return err
		}

		msg := Message{Binary: typ == websocket.BinaryMessage, Data: data}
		select {
		case messages <- msg:
		case <-done:
			return nil
		}
	}
}

// Messages returns the channel of received messages for the current
// connection, or nil if never connected. It is closed when the
// connection ends.
func (c *Client) Messages() <-chan Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages
}

// Pump passes every queued message to fn without blocking and returns how
// many were handled. Call it from an update callback.
func (c *Client) Pump(fn func(Message)) int {
	messages := c.Messages()
	if messages == nil {
		return 0
	}
	n := 0
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return n
			}
			fn(msg)
			n++
		default:
			return n
		}
	}
}

// Send writes a text message.
func (c *Client) Send(message string) error {
	return c.write(websocket.TextMessage, []byte(message))
}

// SendBinary writes a binary message.
func (c *Client) SendBinary(data []byte) error {
	return c.write(websocket.BinaryMessage, data)
}

func (c *Client) write(typ int, data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		c.log.Warn("websocket not open, message not sent")
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteMessage(typ, data); err != nil {
		c.log.Error("websocket write failed", zap.Error(err))
		return fmt.Errorf("send: %w", err)
	}
	c.log.Debug("message sent", zap.Int("bytes", len(data)))
	return nil
}

// Disconnect closes the websocket and waits for the reader to exit.
// Disconnecting when not connected is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn, group, done := c.conn, c.group, c.done
	c.conn, c.group, c.done = nil, nil, nil
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	close(done)
	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(defaultCloseTimeout))
	c.writeMu.Unlock()

	closeErr := conn.Close()
	err := group.Wait()
	c.log.Info("websocket disconnected")
	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("disconnect: %w", closeErr)
	}
	return nil
}
