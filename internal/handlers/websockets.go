package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Stream message types.
const (
	msgState  = "state"
	msgView   = "view"
	msgNotice = "notice"
	msgSync   = "sync"
	msgFocus  = "focus"
	msgError  = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsNotice is the payload of a notice envelope.
type wsNotice struct {
	ui.Notice
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// wsClientMessage is what clients may send: {"type":"focus","active":false}.
type wsClientMessage struct {
	Type   string `json:"type"`
	Active *bool  `json:"active,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Dashboard stream
// @Description  WebSocket pushing "state" and "view" envelopes on every sync and "notice" envelopes for operator notices. "sync" envelopes carry the failure streak after each failed sync and on recovery. Accepts {"type":"focus","active":bool}.
// @Tags         dashboard
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	states, stopStates := h.services.Dashboard.Subscribe()
	defer stopStates()
	notices, stopNotices := h.services.EventLog.SubscribeNotices()
	defer stopNotices()
	syncs, stopSyncs := h.services.Dashboard.SubscribeSync()
	defer stopSyncs()

	// Reader goroutine handles focus messages and detects disconnects.
	done := make(chan struct{})
	rejected := make(chan string, 1)
	go h.startReader(c.Request.Context(), conn, done, rejected)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case st, ok := <-states:
			if !ok {
				h.closeStream(conn)
				return
			}
			if err := h.sendState(conn, st); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case ev, ok := <-notices:
			if !ok {
				h.closeStream(conn)
				return
			}
			if err := h.write(conn, wsEnvelope{Type: msgNotice, Data: toWSNotice(ev)}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case st, ok := <-syncs:
			if !ok {
				h.closeStream(conn)
				return
			}
			if err := h.write(conn, wsEnvelope{Type: msgSync, Data: st}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case reason := <-rejected:
			if err := h.write(conn, wsEnvelope{Type: msgError, Error: reason}); err != nil {
				return
			}
		}
	}
}

// startReader applies focus messages and reports malformed ones to the writer.
func (h *Handler) startReader(ctx context.Context, conn *websocket.Conn, done chan<- struct{}, rejected chan<- string) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var msg wsClientMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != msgFocus || msg.Active == nil {
			select {
			case rejected <- "unsupported message; expected {\"type\":\"focus\",\"active\":bool}":
			default:
			}
			continue
		}
		h.services.Dashboard.SetActive(ctx, *msg.Active)
	}
}

// sendState writes the state followed by its overview view.
func (h *Handler) sendState(conn *websocket.Conn, st *models.ClientState) error {
	if err := h.write(conn, wsEnvelope{Type: msgState, Data: st}); err != nil {
		return err
	}
	view, err := ui.BuildNamed(ui.ViewOverview, st)
	if err != nil {
		return nil
	}
	return h.write(conn, wsEnvelope{Type: msgView, Data: view})
}

func (h *Handler) write(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

// closeStream tells the client the server is going away.
func (h *Handler) closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func toWSNotice(ev models.DashboardEvent) wsNotice {
	return wsNotice{
		Notice:     ui.Notice{Header: ev.Header, Message: ev.Description},
		Type:       ev.Type,
		OccurredAt: ev.OccurredAt,
	}
}
