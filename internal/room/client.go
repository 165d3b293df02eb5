package room

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"golang.org/x/time/rate"

	"github.com/ntammineni5/pictionary/logger"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pingInterval   = 54 * time.Second
)

// Client is one connected player: the websocket plus the send queue the
// session fans messages into.
type Client struct {
	ID string

	session      *Session
	conn         *websocket.Conn
	send         chan []byte
	ctx          context.Context
	cancel       context.CancelFunc
	once         sync.Once
	guessLimiter *rate.Limiter
}

func NewClient(id string, conn *websocket.Conn, session *Session) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:           id,
		session:      session,
		conn:         conn,
		send:         make(chan []byte, sendBufferSize),
		ctx:          ctx,
		cancel:       cancel,
		guessLimiter: rate.NewLimiter(rate.Limit(3), 5),
	}
}

// cleanup never closes the send channel: broadcasts can still hold the
// client until the session registry forgets it, so the pumps quit through
// ctx instead.
func (c *Client) cleanup() {
	c.once.Do(func() {
		c.cancel()
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// enqueue hands a frame to the write pump without blocking; a full queue
// means the client is wedged and the frame is dropped.
func (c *Client) enqueue(msg []byte) {
	select {
	case <-c.ctx.Done():
	case c.send <- msg:
	default:
		logger.Error("send queue full for client %s, dropping frame", c.ID)
	}
}

// ReadPump decodes inbound envelopes and hands them to the session. The
// session treats the pump's exit as the player leaving.
func (c *Client) ReadPump() {
	defer func() {
		c.cleanup()
		c.session.HandleDisconnect(c)
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, raw, err := c.conn.ReadMessage()
			if err != nil {
				logger.Debug("read error for client %s: %v", c.ID, err)
				return
			}

			var msg WSMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				logger.Info("invalid frame from client %s: %v", c.ID, err)
				continue
			}

			c.session.Dispatch(c, msg)
		}
	}
}

// WritePump drains the send queue onto the socket and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.cleanup()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write error for client %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Debug("ping error for client %s: %v", c.ID, err)
				return
			}
		}
	}
}
