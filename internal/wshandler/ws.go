package wshandler

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/gangbro/missionboard/internal/bus"
)

const writeTimeout = time.Second * 10

// Conn is the part of a websocket connection the handler needs.
type Conn interface {
	WriteJSON(v any) error
	ReadMessage() (int, []byte, error)
	SetWriteDeadline(t time.Time) error
	SetCloseHandler(h func(code int, text string) error)
	Close() error
}

var _ Conn = &websocket.Conn{}

// JSONWsHandler pushes the events of one bus subscription to a websocket
// client. Incoming frames are read only to notice the disconnect.
type JSONWsHandler struct {
	log    *slog.Logger
	name   string
	ws     Conn
	sub    *bus.Subscription
	active int32
}

func NewHandler(log *slog.Logger, ws Conn, sub *bus.Subscription) *JSONWsHandler {
	return &JSONWsHandler{
		log:    log.With("client", sub.Name()),
		name:   sub.Name(),
		ws:     ws,
		sub:    sub,
		active: 1,
	}
}

func (w *JSONWsHandler) IsActive() bool {
	return w != nil && atomic.LoadInt32(&w.active) == 1
}

func (w *JSONWsHandler) stop() {
	if atomic.CompareAndSwapInt32(&w.active, 1, 0) {
		w.sub.Close()
		_ = w.ws.Close()
	}
}

func (w *JSONWsHandler) writer() {
	defer w.stop()

	for e := range w.sub.C() {
		if !w.IsActive() {
			return
		}

		_ = w.ws.SetWriteDeadline(time.Now().Add(writeTimeout))

		if err := w.ws.WriteJSON(e); err != nil {
			w.log.Debug("error on write", slog.Any("error", err))
			return
		}
	}
}

func (w *JSONWsHandler) reader() {
	defer w.stop()

	for {
		_, _, err := w.ws.ReadMessage()

		if err != nil {
			w.log.Debug("error on read", slog.Any("error", err))

			return
		}
	}
}

func (w *JSONWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

// Listen blocks until the client goes away or the subscription is closed.
func (w *JSONWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
