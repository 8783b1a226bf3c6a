package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

// Client wraps a websocket connection with buffered reader and writer
// goroutines. Both channels close when the connection drops.
type Client struct {
	Conn *websocket.Conn
	R    chan []byte
	W    chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, 128),
		W:    make(chan []byte, 128),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	defer close(c.W)

	for {
		msg := <-c.W
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// Write sends msg to the writer goroutine. It returns an error instead of
// panicking if the connection has already been closed.
func (c *Client) Write(msg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("connection is closed")
		}
	}()

	c.W <- msg
	return nil
}

func (c *Client) Close() error {
	return c.Conn.Close()
}
