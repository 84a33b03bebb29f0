package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/authority"
	"github.com/vultisig/app-send/internal/gating"
	"github.com/vultisig/app-send/internal/inputguard"
	"github.com/vultisig/app-send/internal/metrics"
	"github.com/vultisig/app-send/internal/session"
	"github.com/vultisig/app-send/internal/stats"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin enforcement belongs to the reverse proxy in front of this
	// service.
	CheckOrigin: func(*http.Request) bool { return true },
}

// clientEvent is the browser's rendering of one UI event.
type clientEvent struct {
	Type   string             `json:"type"`
	Field  authority.Field    `json:"field,omitempty"`
	Value  string             `json:"value,omitempty"`
	Key    *inputguard.Key    `json:"key,omitempty"`
	Symbol string             `json:"symbol,omitempty"`
	Chain  string             `json:"chain,omitempty"`
	Via    gating.Interaction `json:"via,omitempty"`
}

// serverMsg wraps everything pushed to the browser.
type serverMsg struct {
	Type   string          `json:"type"`
	Update *session.Update `json:"update,omitempty"`
	Field  authority.Field `json:"field,omitempty"`
	Allow  *bool           `json:"allow,omitempty"`
}

func (s *Server) handleWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan serverMsg, sendBufferSize),
		logger: s.logger.WithField("remote", conn.RemoteAddr().String()),
	}
	client.session = session.New(s.logger, s.feed, client.emitUpdate)
	client.stats = s.stats

	metrics.SessionOpened()
	defer metrics.SessionClosed()
	s.stats.RecordConnection(conn.RemoteAddr().String())

	go client.writeLoop()
	defer client.closeSend()

	snapshot := client.session.Snapshot()
	client.push(serverMsg{Type: "state", Update: &snapshot})

	client.readLoop(s.cfg.PriceRefresh)
	return nil
}

type wsClient struct {
	conn    *websocket.Conn
	session *session.Session
	stats   *stats.Collector
	logger  *logrus.Entry

	// sendMu orders push against closeSend: session fetch goroutines can
	// outlive the connection and must never hit a closed channel.
	sendMu sync.Mutex
	send   chan serverMsg
	closed bool
}

// emitUpdate is the session's push path.
func (c *wsClient) emitUpdate(u session.Update) {
	c.push(serverMsg{Type: "state", Update: &u})
}

// push drops on a saturated buffer instead of blocking the event loop, and
// is a no-op after teardown. Dropping is safe: every state message is a full
// snapshot, so the next one supersedes it.
func (c *wsClient) push(msg serverMsg) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send buffer full, dropping message")
	}
}

// closeSend detaches the client from its session: later pushes, including
// those from in-flight price fetches, become no-ops.
func (c *wsClient) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *wsClient) writeLoop() {
	defer func() { _ = c.conn.Close() }()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

// readLoop processes events strictly in arrival order; the session applies
// each one synchronously, which is what keeps a pass from interleaving with
// another.
func (c *wsClient) readLoop(priceRefresh time.Duration) {
	if priceRefresh <= 0 {
		priceRefresh = 30 * time.Second
	}
	ticker := time.NewTicker(priceRefresh)
	defer ticker.Stop()

	events := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			events <- data
		}
	}()

	for {
		select {
		case <-ticker.C:
			c.session.RefreshPrice()
		case err := <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.WithError(err).Debug("websocket read failed")
			}
			return
		case data := <-events:
			var ev clientEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				c.logger.WithError(err).Warn("malformed client event")
				continue
			}
			c.dispatch(ev)
		}
	}
}

func (c *wsClient) dispatch(ev clientEvent) {
	switch ev.Type {
	case "input":
		c.session.HandleInput(ev.Field, ev.Value)
	case "key":
		if ev.Key == nil {
			return
		}
		allow := c.session.HandleKey(ev.Field, *ev.Key)
		c.push(serverMsg{Type: "key_verdict", Field: ev.Field, Allow: &allow})
	case "insert":
		c.session.HandleInsert(ev.Field, ev.Value)
	case "paste":
		c.session.HandlePaste(ev.Field)
	case "focus":
		via := ev.Via
		if via == "" {
			via = gating.InteractionFocus
		}
		c.session.HandleFocus(ev.Field, true, via)
	case "blur":
		c.session.HandleFocus(ev.Field, false, gating.InteractionFocus)
	case "toggle_mode":
		c.session.ToggleMode()
	case "select_asset":
		chain, err := common.FromString(ev.Chain)
		if err != nil {
			c.logger.WithField("chain", ev.Chain).Warn("unknown chain in selection")
			return
		}
		c.stats.RecordSelection(ev.Symbol)
		c.session.SelectAsset(ev.Symbol, chain)
	case "address":
		c.session.SetRecipient(ev.Value)
	case "refresh":
		c.session.OnAmountRelevantEvent()
	case "reset":
		c.session.Reset()
	default:
		c.logger.WithField("type", ev.Type).Debug("ignoring unknown event type")
	}
}
