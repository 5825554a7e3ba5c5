package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"beatwave/config"
	"beatwave/core/player"
	"beatwave/logger"
	"beatwave/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 推送给客户端的消息类型
const (
	MsgTypeHello = "hello"
	MsgTypeState = "state"
	MsgTypeError = "error"
	MsgTypePong  = "pong"
	msgTypePing  = "ping"
)

// playerMessage is one frame sent over the player socket.
type playerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	State   *player.Snapshot `json:"state,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// playerOptions builds transport options from config.
func playerOptions(cfg *config.Config) player.Options {
	return player.Options{
		FrameInterval: time.Duration(cfg.PlayerTickMS) * time.Millisecond,
		DurationRate:  cfg.PlayerRateMode == config.RateModeDuration,
	}
}

// beatLookup adapts the catalog for the transport.
func (h *APIHandler) beatLookup(id string) (model.Beat, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b, err := h.catalog.GetBeat(ctx, id)
	if err != nil {
		return model.Beat{}, false
	}
	return *b, true
}

// PlayerSocketHandler runs one transport bar per connection. Clients send
// player.Command JSON and receive a state snapshot after every command and
// every animation frame.
func (h *APIHandler) PlayerSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	logger.Info("[Player] 连接建立", logger.String("session", sessionID))

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()

	var (
		send = make(chan []byte, sendBuffer)
		done = make(chan struct{})
		cmds = make(chan player.Command)
		wg   sync.WaitGroup
	)
	push := func(msg playerMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			return
		}
		select {
		case send <- data:
		case <-done:
		default:
			// 客户端太慢，丢弃这一帧
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		writePump(conn, send, done)
	}()
	go func() {
		defer wg.Done()
		defer close(cmds)
		h.readPump(conn, sessionID, cmds, done, push)
	}()

	transport := player.NewTransport(h.beatLookup, playerOptions(h.cfg))
	hello := transport.Snapshot()
	push(playerMessage{Type: MsgTypeHello, Session: sessionID, State: &hello})

	lastBeat := ""
	emit := func(s player.Snapshot) {
		if s.BeatID != "" && s.BeatID != lastBeat {
			lastBeat = s.BeatID
			rctx, rcancel := context.WithTimeout(ctx, 5*time.Second)
			if err := h.catalog.RecordPlay(rctx, s.BeatID); err != nil {
				logger.Warn("记录播放次数失败", logger.String("beatId", s.BeatID), logger.ErrorField(err))
			}
			rcancel()
		}
		push(playerMessage{Type: MsgTypeState, State: &s})
	}

	if err := transport.Run(ctx, cmds, emit); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("[Player] transport stopped", logger.String("session", sessionID), logger.ErrorField(err))
	}
	close(done)
	conn.Close()
	wg.Wait()
	logger.Info("[Player] 连接关闭", logger.String("session", sessionID))
}

// readPump decodes commands until the connection fails. Commands over the
// configured rate are answered with an error and dropped.
func (h *APIHandler) readPump(conn *websocket.Conn, sessionID string, cmds chan<- player.Command, done <-chan struct{}, push func(playerMessage)) {
	limiter := rate.NewLimiter(rate.Limit(h.cfg.PlayerCmdRate), h.cfg.PlayerCmdBurst)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", logger.String("session", sessionID), logger.ErrorField(err))
			}
			return
		}

		var cmd player.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			push(playerMessage{Type: MsgTypeError, Error: "invalid command"})
			continue
		}
		if cmd.Type == msgTypePing {
			push(playerMessage{Type: MsgTypePong})
			continue
		}
		if !limiter.Allow() {
			push(playerMessage{Type: MsgTypeError, Error: "rate limited"})
			continue
		}

		select {
		case cmds <- cmd:
		case <-done:
			return
		}
	}
}

// writePump serializes writes and keeps the connection alive with pings.
func writePump(conn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
