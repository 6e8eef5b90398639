package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ionutrobert/WebScape/internal/engine"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"
	"github.com/ionutrobert/WebScape/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	loadTimeout    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client sits between one websocket and the session gateway.
type Client struct {
	Service   *engine.Service
	Conn      *websocket.Conn
	SessionID string
	log       *logrus.Entry
}

func NewClient(svc *engine.Service, conn *websocket.Conn) *Client {
	id := utils.GenerateID()
	return &Client{
		Service:   svc,
		Conn:      conn,
		SessionID: id,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "gateway",
			"session":   id,
		}),
	}
}

func (c *Client) closeConn() {
	if err := c.Conn.Close(); err != nil {
		c.log.WithError(err).Debug("failed to close websocket connection")
	}
}

// readPump handles the join handshake, then forwards frames until the socket closes.
func (c *Client) readPump() {
	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// 1. HANDSHAKE
	_, raw, err := c.Conn.ReadMessage()
	if err != nil {
		c.log.WithError(err).Warn("Handshake failed")
		c.closeConn()
		return
	}
	join, err := engine.ParseJoin(raw)
	if err != nil {
		c.log.WithError(err).Warn("First frame is not a valid join")
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "first message must be join")
		_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.closeConn()
		return
	}

	// 2. LOAD + SUBSCRIBE + QUEUE THE JOIN
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	updates := c.Service.Join(ctx, c.SessionID, join.Username)
	cancel()
	c.log = c.log.WithField("username", join.Username)
	c.log.Info("Client joined")

	go c.writePump(updates)

	defer func() {
		c.Service.Leave(c.SessionID)
		c.closeConn()
		c.log.Info("Client disconnected")
	}()

	// 3. READ LOOP
	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS error")
			}
			return
		}
		if err := c.Service.Submit(c.SessionID, raw); err != nil {
			if errors.Is(err, engine.ErrSessionUnknown) {
				// replaced by a newer login
				return
			}
			c.log.WithError(err).Debug("Frame rejected")
		}
	}
}

// writePump sends events to the client, plus pings. It closes the socket once
// the broadcaster closes the channel.
func (c *Client) writePump(updates <-chan api.Envelope) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConn()
	}()

	for {
		select {
		case message, ok := <-updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
