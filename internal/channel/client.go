package channel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Client calls methods on a remote Server.
type Client struct {
	conn   *websocket.Conn
	nextID atomic.Uint64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan Response
	err     error
	done    chan struct{}
}

// Dial connects to the websocket endpoint at url.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{
		conn:    conn,
		pending: map[uint64]chan Response{},
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var res Response
		if err := c.conn.ReadJSON(&res); err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[res.ID]
		delete(c.pending, res.ID)
		c.mu.Unlock()
		if ok {
			ch <- res
		}
	}
}

// Invoke calls method and waits for its result.
func (c *Client) Invoke(ctx context.Context, method string, args map[string]any) (any, error) {
	id := c.nextID.Add(1)
	ch := make(chan Response, 1)

	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}

	c.writeMu.Lock()
	err := c.conn.WriteJSON(Request{ID: id, Method: method, Args: args})
	c.writeMu.Unlock()
	if err != nil {
		forget()
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case res := <-ch:
		switch {
		case res.Error != nil:
			return nil, res.Error
		case res.NotImplemented:
			return nil, fmt.Errorf("%s: %w", method, ErrNotImplemented)
		}
		return res.Result, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		forget()
		return nil, ctx.Err()
	}
}

// Snapshot fetches the diagnostics snapshot.
func (c *Client) Snapshot(ctx context.Context) (map[string]any, error) {
	v, err := c.Invoke(ctx, MethodGetSnapshot, nil)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("snapshot: unexpected result %T", v)
	}
	return m, nil
}

// SetTestRPM pushes a test rpm to the renderer.
func (c *Client) SetTestRPM(ctx context.Context, rpm float32) error {
	_, err := c.Invoke(ctx, MethodSetTestRPM, map[string]any{"rpm": rpm})
	return err
}

// Close closes the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}
