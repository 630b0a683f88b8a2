package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/animate/internal/errors"
)

// Frame types.
const (
	FrameHTML  = "html"
	FrameError = "error"
	FrameEvent = "event"
)

// ServerFrame is a message sent to the client.
type ServerFrame struct {
	Type    string `json:"type"`
	HTML    string `json:"html,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ClientMessage is a message received from the client.
type ClientMessage struct {
	Type  string `json:"type"`
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// ParseClientMessage decodes and validates a client frame.
func ParseClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("A040").Wrap(err)
	}
	if msg.Type != FrameEvent {
		return msg, errors.New("A040").WithDetail("unknown message type " + msg.Type)
	}
	if msg.HID == "" || msg.Event == "" {
		return msg, errors.New("A040").WithDetail("event messages need hid and event")
	}
	return msg, nil
}

func errorFrame(err error) ServerFrame {
	ae := errors.FromError(err, "A021")
	return ServerFrame{Type: FrameError, Code: ae.Code, Message: ae.Error()}
}

func (h *Host) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: h.config.CheckOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Metrics.recordWSError("upgrade")
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.config.Metrics.connOpened()
	defer h.config.Metrics.connClosed()

	c := &client{
		id:   uuid.NewString(),
		host: h,
		conn: conn,
		out:  make(chan ServerFrame, h.config.SendBuffer),
		done: make(chan struct{}),
	}
	c.logger = h.logger.With("conn", c.id)
	c.logger.Debug("client connected", "remote", r.RemoteAddr)
	defer c.logger.Debug("client disconnected")
	unsubscribe := h.Subscribe(func(html string) {
		c.send(ServerFrame{Type: FrameHTML, HTML: html})
	})
	defer unsubscribe()

	go c.writeLoop()
	defer close(c.done)

	// The initial frame reaches this client through the subscription.
	if _, err := h.Render(); err != nil {
		c.send(errorFrame(err))
	}
	c.readLoop()
}

type client struct {
	id     string
	host   *Host
	conn   *websocket.Conn
	out    chan ServerFrame
	done   chan struct{}
	logger *slog.Logger
}

func (c *client) send(f ServerFrame) {
	select {
	case c.out <- f:
		c.host.config.Metrics.recordFrame(f.Type)
	default:
		c.host.config.Metrics.recordWSError("send_buffer_full")
		c.logger.Warn("client send buffer full, dropping frame", "type", f.Type)
	}
}

func (c *client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.host.config.Metrics.recordWSError("read")
				c.logger.Error("read error", "error", err)
			}
			return
		}

		msg, err := ParseClientMessage(data)
		if err != nil {
			c.host.config.Metrics.recordWSError("malformed")
			c.logger.Warn("bad client message", "error", err)
			c.send(errorFrame(err))
			continue
		}
		if err := c.host.HandleEvent(msg.HID, msg.Event); err != nil {
			c.logger.Debug("event not handled", "hid", msg.HID, "event", msg.Event, "error", err)
			c.send(errorFrame(err))
		}
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for {
		select {
		case f := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(c.host.config.WriteTimeout))
			if err := c.conn.WriteJSON(f); err != nil {
				c.host.config.Metrics.recordWSError("write")
				c.logger.Debug("write failed", "error", err)
				return
			}
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		}
	}
}
